package entity

// Admin is an operator of the application, keyed by the auth provider's uid.
type Admin struct {
	Data AdminData `json:"data"`
}

// AdminData holds the profile and permission fields of an admin.
type AdminData struct {
	UserID         string         `json:"userID"`
	FullName       string         `json:"fullName"`
	Male           bool           `json:"male"`
	Contact        Contact        `json:"contact"`
	ImportantTimes ImportantTimes `json:"importantTimes"`
	Permission     Permission     `json:"permission"`
}

// Contact is a phone number with its country code.
type Contact struct {
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phoneNumber"`
}

// ImportantTimes tracks admin activity.
type ImportantTimes struct {
	LastSeen int64 `json:"lastSeen,omitempty"`
}

// Permission gates access to the application.
type Permission struct {
	Verified bool `json:"verified"`
	Blocked  bool `json:"blocked"`
}

// CanAccess reports whether the admin may use the application.
func (a *Admin) CanAccess() bool {
	return a.Data.Permission.Verified && !a.Data.Permission.Blocked
}

// Clone returns a copy of the admin.
func (a *Admin) Clone() *Admin {
	out := *a

	return &out
}
