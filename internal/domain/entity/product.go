package entity

// Product is an item the business sells, stored under productList.
type Product struct {
	Data   ProductData `json:"data"`
	Others Audit       `json:"others"`
}

// ProductData holds the catalogue fields of a product.
type ProductData struct {
	ProductID         string  `json:"productId"`
	Name              string  `json:"name"`
	Rate              float64 `json:"rate"`
	ExtraNote         string  `json:"extraNote,omitempty"`
	ProductReturnable bool    `json:"productReturnable"` // Units are expected back (e.g. cylinders).
}

// Snapshot returns the denormalized copy stored inside transactions.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		Name:              p.Data.Name,
		Rate:              p.Data.Rate,
		ProductID:         p.Data.ProductID,
		ProductReturnable: p.Data.ProductReturnable,
	}
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	out := *p
	out.Others = p.Others.Clone()

	return &out
}

// ProductSnapshot is the product as it was when a transaction was saved.
type ProductSnapshot struct {
	Name              string  `json:"name"`
	Rate              float64 `json:"rate"`
	ProductID         string  `json:"productId"`
	ProductReturnable bool    `json:"productReturnable"`
}

// ProductQuantity is one product line of a transaction or deposit.
type ProductQuantity struct {
	ProductData   ProductSnapshot `json:"productData"`
	SentUnits     int             `json:"sentUnits"`
	RecievedUnits int             `json:"recievedUnits"`
	PaymentAmt    float64         `json:"paymentAmt"`
}

// PendingUnits returns sent minus received, or nil when the product is not returnable.
func (q ProductQuantity) PendingUnits() *int {
	if !q.ProductData.ProductReturnable {
		return nil
	}
	pending := q.SentUnits - q.RecievedUnits

	return &pending
}

// IsEmpty reports whether the line moves no units at all.
func (q ProductQuantity) IsEmpty() bool {
	return q.SentUnits == 0 && q.RecievedUnits == 0
}
