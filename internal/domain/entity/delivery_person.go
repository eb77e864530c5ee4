package entity

// DeliveryPerson is a member of staff who carries products to customers.
type DeliveryPerson struct {
	Data   DeliveryPersonData `json:"data"`
	Others Audit              `json:"others"`
}

// DeliveryPersonData holds the profile fields of a delivery person.
type DeliveryPersonData struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	ExtraNote   string `json:"extraNote,omitempty"`
	IsUpdated   bool   `json:"isUpdated,omitempty"`
}

// UserData returns the snapshot embedded into delivery lists.
func (d *DeliveryPerson) UserData() UserData {
	return UserData{
		FullName:    d.Data.FullName,
		PhoneNumber: d.Data.PhoneNumber,
		UserID:      d.Data.UserID,
	}
}

// Clone returns a deep copy of the delivery person.
func (d *DeliveryPerson) Clone() *DeliveryPerson {
	out := *d
	out.Others = d.Others.Clone()

	return &out
}
