package entity

import "time"

// ChangeAction describes what happened to a record.
type ChangeAction string

const (
	ChangeSaved     ChangeAction = "saved"
	ChangeDeleted   ChangeAction = "deleted"
	ChangeRefreshed ChangeAction = "refreshed"
	ChangeMoved     ChangeAction = "moved"
)

// ChangeEvent is emitted by repositories after every write attempt.
type ChangeEvent struct {
	Topic      string       `json:"topic"`
	Action     ChangeAction `json:"action"`
	ID         string       `json:"id,omitempty"`
	Success    bool         `json:"success"`
	Origin     string       `json:"origin,omitempty"` // Instance that produced the event.
	RequestID  string       `json:"request_id,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}
