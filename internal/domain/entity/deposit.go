package entity

import "slices"

// DepositEntry records returnable-container deposits for one customer.
type DepositEntry struct {
	Data   DepositData `json:"data"`
	Others Audit       `json:"others"`
}

// DepositData holds the business fields of a deposit.
type DepositData struct {
	TransactionID    string            `json:"transactionId"`
	Date             string            `json:"date"` // DD/MM/YYYY
	Customer         UserData          `json:"customer"`
	PaymentAmt       float64           `json:"paymentAmt"`
	ReturnAmt        float64           `json:"returnAmt"`
	ExtraDetails     string            `json:"extraDetails,omitempty"`
	SelectedProducts []ProductQuantity `json:"selectedProducts,omitempty"`
}

// ID returns the deposit's transaction id.
func (d *DepositEntry) ID() string {
	return d.Data.TransactionID
}

// NetAmount returns payment minus return for this deposit alone.
func (d *DepositEntry) NetAmount() float64 {
	return d.Data.PaymentAmt - d.Data.ReturnAmt
}

// Clone returns a deep copy of the deposit.
func (d *DepositEntry) Clone() *DepositEntry {
	out := *d
	out.Data.SelectedProducts = slices.Clone(d.Data.SelectedProducts)
	out.Others = d.Others.Clone()

	return &out
}
