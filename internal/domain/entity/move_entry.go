package entity

import "slices"

// MoveEntryPayload is the immutable audit record of one move-entries run.
type MoveEntryPayload struct {
	MoveID            string   `json:"moveId"`
	FromUserID        string   `json:"fromUserId"`
	ToUserID          string   `json:"toUserId"`
	TransactionIDList []string `json:"transactionIdList"`
	MoveTime          int64    `json:"moveTime"`
	MovedBy           string   `json:"movedBy"`
	ExtraNote         string   `json:"extraNote,omitempty"`
}

// Clone returns a deep copy of the payload.
func (m *MoveEntryPayload) Clone() *MoveEntryPayload {
	out := *m
	out.TransactionIDList = slices.Clone(m.TransactionIDList)

	return &out
}

// Severity grades the outcome of a batch operation for the user notification.
type Severity string

const (
	SeverityGreen  Severity = "green"
	SeverityYellow Severity = "yellow"
	SeverityRed    Severity = "red"
)

// SeverityFor grades a batch by its success and failure counts.
func SeverityFor(successCount, failureCount int) Severity {
	switch {
	case failureCount == 0:
		return SeverityGreen
	case successCount == 0:
		return SeverityRed
	default:
		return SeverityYellow
	}
}
