package usecase

import (
	"context"
)

// NamedValue is one entry of a per-product or per-tag breakdown.
type NamedValue struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StatItem is one line of a leaderboard card.
type StatItem struct {
	ID           string       `json:"id,omitempty"`
	Title        string       `json:"title"`
	Value        float64      `json:"value"`
	Display      string       `json:"display,omitempty"`
	PercentValue *float64     `json:"percentValue,omitempty"`
	Products     []NamedValue `json:"productList,omitempty"`
}

// PendingReturnRow is one customer of the pending returns export.
type PendingReturnRow struct {
	CustomerID   string       `json:"customerId"`
	CustomerName string       `json:"customerName"`
	TotalPending int          `json:"totalPending"`
	Products     []NamedValue `json:"pendingProducts"`
}

// CustomerStats is the customers card group.
type CustomerStats struct {
	TotalCustomers      int                 `json:"totalCustomers"`
	NewCustomers        int                 `json:"newCustomers"`
	NewCustomersPercent float64             `json:"newCustomersPercent"`
	PendingReturnsTotal int                 `json:"pendingReturnsTotal"`
	PendingReturns      []StatItem          `json:"pendingReturns"`
	CanExpand           bool                `json:"canExpand"`
	PendingExport       []*PendingReturnRow `json:"pendingExport"`
	TopCustomers        []StatItem          `json:"topCustomers"`
}

// ProductStats is the products card group.
type ProductStats struct {
	Sales               []NamedValue `json:"sales"`
	TotalUnitsSold      int          `json:"totalUnitsSold"`
	TotalUnitsDisplay   string       `json:"totalUnitsDisplay"`
	AverageMonthlySales float64      `json:"averageMonthlySales"`
	MonthlyDemand       []StatItem   `json:"monthlyDemand"`
}

// DepositStats is the deposits card group.
type DepositStats struct {
	NetUnits           int          `json:"netUnits"`
	ProductNet         []NamedValue `json:"productNet"`
	NewDepositUnits    int          `json:"newDepositUnits"`
	NewDepositPercent  float64      `json:"newDepositPercent"`
	TotalAmount        float64      `json:"totalAmount"`
	TotalAmountDisplay string       `json:"totalAmountDisplay"`
	TopCustomers       []StatItem   `json:"topCustomers"`
}

// TransactionStats is the transactions card group.
type TransactionStats struct {
	Count                 int        `json:"count"`
	PendingPayment        float64    `json:"pendingPayment"`
	PendingPaymentDisplay string     `json:"pendingPaymentDisplay"`
	Revenue               float64    `json:"revenue"`
	RevenueDisplay        string     `json:"revenueDisplay"`
	TopCustomers          []StatItem `json:"topCustomers"`
}

// LocationCount is the number of deliveries to one address.
type LocationCount struct {
	Location string `json:"location"`
	Delivery int    `json:"delivery"`
}

// DeliveryStats is the delivery card group.
type DeliveryStats struct {
	Completed          int             `json:"completed"`
	CompletedPercent   float64         `json:"completedPercent"`
	DeliveryPersons    int             `json:"deliveryPersons"`
	PerMonth           []StatItem      `json:"perMonth"`
	TopDeliveryPersons []StatItem      `json:"topDeliveryPersons"`
	TopLocations       []LocationCount `json:"topLocations"`
}

// TagStats is the tags card group.
type TagStats struct {
	TagCount  int          `json:"tagCount"`
	TotalUsed int          `json:"totalUsed"`
	Usage     []NamedValue `json:"usage"`
}

// Dashboard holds every statistics card.
type Dashboard struct {
	Customers    CustomerStats    `json:"customers"`
	Products     ProductStats     `json:"products"`
	Deposits     DepositStats     `json:"deposits"`
	Transactions TransactionStats `json:"transactions"`
	Delivery     DeliveryStats    `json:"delivery"`
	Tags         TagStats         `json:"tags"`
}

// Sales frequencies.
const (
	FrequencyYearly  = "yearly"
	FrequencyMonthly = "monthly"
	FrequencyDaily   = "daily"
)

// SalesQuery selects sales buckets. Year is required for monthly, year and
// month for daily.
type SalesQuery struct {
	Frequency string `query:"frequency" validate:"omitempty,oneof=yearly monthly daily"`
	Year      int    `query:"year"`
	Month     int    `query:"month" validate:"omitempty,min=1,max=12"`
}

// SalesBucket is the units sent in one year, month or day.
type SalesBucket struct {
	Key      string       `json:"key"`
	Label    string       `json:"label"`
	Units    int          `json:"units"`
	Products []NamedValue `json:"products"`
}

// StatisticsUsecase aggregates the repositories into dashboard cards.
type StatisticsUsecase interface {
	Dashboard(ctx context.Context, adminID string) (*Dashboard, error)
	Sales(ctx context.Context, query *SalesQuery) ([]SalesBucket, error)
}
