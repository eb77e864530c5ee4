package entity

import "slices"

// Customer is a buyer of products, stored under customer/bucket.
type Customer struct {
	Data   CustomerData `json:"data"`
	Others Audit        `json:"others"`
}

// CustomerData holds the profile fields of a customer.
type CustomerData struct {
	UserID          string   `json:"userId"`
	FullName        string   `json:"fullName"`
	PhoneNumber     string   `json:"phoneNumber"`
	Address         string   `json:"address"`
	ShippingAddress []string `json:"shippingAddress,omitempty"`
	ExtraNote       string   `json:"extraNote,omitempty"`
	IsUpdated       bool     `json:"isUpdated,omitempty"` // Profile reviewed after auto-creation.
}

// UserData returns the snapshot embedded into transactions.
func (c *Customer) UserData() UserData {
	return UserData{
		FullName:    c.Data.FullName,
		PhoneNumber: c.Data.PhoneNumber,
		UserID:      c.Data.UserID,
	}
}

// HasShippingAddress reports whether addr is already known for the customer.
func (c *Customer) HasShippingAddress(addr string) bool {
	return slices.Contains(c.Data.ShippingAddress, addr)
}

// Clone returns a deep copy of the customer.
func (c *Customer) Clone() *Customer {
	out := *c
	out.Data.ShippingAddress = slices.Clone(c.Data.ShippingAddress)
	out.Others = c.Others.Clone()

	return &out
}
