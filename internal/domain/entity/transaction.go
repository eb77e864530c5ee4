package entity

import (
	"slices"
	"time"

	"github.com/pkg/errors"
)

// EntryDateLayout is the layout of the date stored on entries and deposits (DD/MM/YYYY).
const EntryDateLayout = "02/01/2006"

// entryDateParseLayout also accepts dates without zero padding.
const entryDateParseLayout = "2/1/2006"

// DisplayDateLayout is the long form shown in tables and exports.
const DisplayDateLayout = "02 January 2006"

// ErrInvalidEntryDate is returned when a stored date is not DD/MM/YYYY.
var ErrInvalidEntryDate = errors.New("invalid entry date")

// ParseEntryDate parses a DD/MM/YYYY date.
func ParseEntryDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(entryDateParseLayout, date, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidEntryDate, "%q", date)
	}

	return t, nil
}

// EntryTransaction is one delivery/payment record for a customer on a date.
type EntryTransaction struct {
	Data   EntryData `json:"data"`
	Others Audit     `json:"others"`
}

// EntryData holds the business fields of a transaction.
type EntryData struct {
	TransactionID    string            `json:"transactionId"`
	Date             string            `json:"date"` // DD/MM/YYYY
	Customer         UserData          `json:"customer"`
	DeliveryBoyList  []DeliveryDone    `json:"deliveryBoyList,omitempty"`
	Total            float64           `json:"total"`
	Payment          float64           `json:"payment"`
	ExtraDetails     string            `json:"extraDetails,omitempty"`
	Status           string            `json:"status,omitempty"`
	ShippingAddress  string            `json:"shippingAddress,omitempty"`
	SelectedProducts []ProductQuantity `json:"selectedProducts,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	ImportIndex      *int              `json:"importIndex,omitempty"` // Row of the import sheet, never persisted.
}

// DeliveryDone is a delivery person together with the units they handled.
type DeliveryDone struct {
	UserData
	DeliveryDone []DeliveryUnits `json:"deliveryDone,omitempty"`
}

// DeliveryUnits is the share of one product handled by one delivery person.
type DeliveryUnits struct {
	ProductID     string `json:"productId"`
	SentUnits     int    `json:"sentUnits"`
	RecievedUnits int    `json:"recievedUnits"`
}

// ID returns the transaction id.
func (e *EntryTransaction) ID() string {
	return e.Data.TransactionID
}

// DueAmount returns total minus payment for this entry alone.
func (e *EntryTransaction) DueAmount() float64 {
	return e.Data.Total - e.Data.Payment
}

// Time parses the entry date.
func (e *EntryTransaction) Time() (time.Time, error) {
	return ParseEntryDate(e.Data.Date)
}

// HasDeliveryPerson reports whether userID appears in the delivery list.
func (e *EntryTransaction) HasDeliveryPerson(userID string) bool {
	for _, d := range e.Data.DeliveryBoyList {
		if d.UserID == userID {
			return true
		}
	}

	return false
}

// Clone returns a deep copy so callers can mutate without touching cached state.
func (e *EntryTransaction) Clone() *EntryTransaction {
	out := *e
	out.Data.SelectedProducts = slices.Clone(e.Data.SelectedProducts)
	out.Data.Tags = slices.Clone(e.Data.Tags)
	if e.Data.DeliveryBoyList != nil {
		out.Data.DeliveryBoyList = make([]DeliveryDone, len(e.Data.DeliveryBoyList))
		for i, d := range e.Data.DeliveryBoyList {
			d.DeliveryDone = slices.Clone(d.DeliveryDone)
			out.Data.DeliveryBoyList[i] = d
		}
	}
	if e.Data.ImportIndex != nil {
		idx := *e.Data.ImportIndex
		out.Data.ImportIndex = &idx
	}
	out.Others = e.Others.Clone()

	return &out
}

// SortByID orders entries ascending by transaction id, which is chronological
// because ids start with the entry date.
func SortByID(entries []*EntryTransaction) {
	slices.SortStableFunc(entries, func(a, b *EntryTransaction) int {
		switch {
		case a.Data.TransactionID < b.Data.TransactionID:
			return -1
		case a.Data.TransactionID > b.Data.TransactionID:
			return 1
		default:
			return 0
		}
	})
}
