// Package entity contains the core business objects of the project.
package entity

// UserData is the denormalized identity snapshot embedded in transactions.
type UserData struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	UserID      string `json:"userId"`
}

// Audit carries the "others" block stored next to every record.
type Audit struct {
	CreatedBy   string   `json:"createdBy,omitempty"`   // Admin id that created the record.
	CreatedTime int64    `json:"createdTime,omitempty"` // Creation time in epoch milliseconds.
	EditedBy    string   `json:"editedBy,omitempty"`    // Admin id of the last edit.
	EditedTime  int64    `json:"editedTime,omitempty"`  // Last edit time in epoch milliseconds.
	MovedBy     string   `json:"movedBy,omitempty"`     // Admin id of the last move.
	MovedTime   int64    `json:"movedTime,omitempty"`   // Last move time in epoch milliseconds.
	MoveIDs     []string `json:"moveIds,omitempty"`     // Every move this record took part in, oldest first.
}

// Clone returns a deep copy of the audit block.
func (a Audit) Clone() Audit {
	out := a
	if a.MoveIDs != nil {
		out.MoveIDs = append([]string(nil), a.MoveIDs...)
	}

	return out
}
