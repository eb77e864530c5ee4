package usecase

import (
	"context"

	"fuelflow/internal/domain/entity"
)

// ProductLine is one product of an inventory row.
type ProductLine struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Rate       float64 `json:"rate"`
	Returnable bool    `json:"productReturnable"`
	Sent       int     `json:"sentUnits"`
	Received   int     `json:"recievedUnits"`
	Pending    *int    `json:"pendingUnits"` // nil for non-returnable products
	PaymentAmt float64 `json:"paymentAmt"`
}

// InventoryRow is a transaction prepared for tables and exports.
type InventoryRow struct {
	ID              string                `json:"transactionId"`
	Date            string                `json:"date"`
	DisplayDate     string                `json:"displayDate"`
	Customer        entity.UserData       `json:"customer"`
	DeliveryBoyList []entity.DeliveryDone `json:"deliveryBoyList"`
	DeliveryNames   string                `json:"deliveryNames"`
	ShippingAddress string                `json:"shippingAddress"`
	Products        []ProductLine         `json:"products"`
	Total           float64               `json:"total"`
	Payment         float64               `json:"payment"`
	DueAmt          float64               `json:"dueAmt"`
	HighlightColor  string                `json:"highlightColor"`
	HasSecondRow    bool                  `json:"hasSecondRow"`
	Tags            []string              `json:"tags"`
	ExtraDetails    string                `json:"extraDetails"`
	Status          string                `json:"status"`
	Others          entity.Audit          `json:"others"`
}

// InventoryFilter narrows the inventory view. Set filters match any element.
type InventoryFilter struct {
	CustomerID        string   `query:"customerId" json:"customerId"`
	ShippingAddresses []string `query:"address" json:"shippingAddresses"`
	ProductIDs        []string `query:"productId" json:"productIds"`
	TagIDs            []string `query:"tagId" json:"tagIds"`
	From              string   `query:"from" json:"from"` // DD/MM/YYYY, inclusive
	To                string   `query:"to" json:"to"`     // DD/MM/YYYY, inclusive
	Search            string   `query:"search" json:"search"`
}

// DepositRow is a deposit with the running balance up to and including it.
type DepositRow struct {
	*entity.DepositEntry
	DueAmt float64 `json:"dueAmt"`
}

// InventoryUsecase derives tables from the transaction repository.
type InventoryUsecase interface {
	// Rows returns the filtered view, newest first, each row carrying its own due.
	Rows(ctx context.Context, filter *InventoryFilter) ([]*InventoryRow, error)

	// CustomerRows returns the customer's rows oldest first with a running due.
	CustomerRows(ctx context.Context, customerID string) ([]*InventoryRow, error)

	// DeliveryPersonRows returns the person's rows oldest first with a running due.
	DeliveryPersonRows(ctx context.Context, personID string) ([]*InventoryRow, error)

	// DepositRows returns the customer's deposits oldest first with a running balance.
	DepositRows(ctx context.Context, customerID string) ([]*DepositRow, error)
}
