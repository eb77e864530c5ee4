package entity

import (
	"time"

	"github.com/pkg/errors"
)

// Policy is a user preference for a confirmation prompt.
type Policy string

const (
	PolicyAsk       Policy = "ask"
	PolicyAlwaysYes Policy = "yes"
	PolicyAlwaysNo  Policy = "no"
)

// ErrInvalidPolicy is returned when a stored policy is not ask, yes or no.
var ErrInvalidPolicy = errors.New("invalid policy")

// ParsePolicy converts a stored string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyAsk, PolicyAlwaysYes, PolicyAlwaysNo:
		return Policy(s), nil
	default:
		return "", errors.Wrapf(ErrInvalidPolicy, "%q", s)
	}
}

// Resolve decides a prompt. For Ask the caller's answer is used; when there is
// no answer yet, needsPrompt is true and decision must be ignored.
func (p Policy) Resolve(answer *bool) (decision bool, needsPrompt bool) {
	switch p {
	case PolicyAlwaysYes:
		return true, false
	case PolicyAlwaysNo:
		return false, false
	default:
		if answer == nil {
			return false, true
		}

		return *answer, false
	}
}

// Default entry date choices.
const (
	EntryDateCurrentDay  = "currentDay"
	EntryDatePreviousDay = "previousDay"
	EntryDateNextDay     = "nextDay"
	EntryDateCustom      = "customDate"
)

// Settings are the per-admin preferences.
type Settings struct {
	ExportFileType                   string `json:"exportFileType" validate:"oneof=ask xlsx csv pdf"`
	ExportDataSize                   string `json:"exportDataSize" validate:"oneof=ask all filtered"`
	OldEntryWhenDateEdited           Policy `json:"oldEntryWhenDateEdited" validate:"oneof=ask yes no"`
	AskForConfirmationOnEdit         Policy `json:"askForConfirmationOnEdit" validate:"oneof=ask yes no"`
	AskForConfirmationOnDuplicate    Policy `json:"askForConfirmationOnDuplicate" validate:"oneof=ask yes no"`
	AskForConfirmationOnNewAddress   Policy `json:"askForConfirmationOnNewAddress" validate:"oneof=ask yes no"`
	CloseDepositEntryOnSelectProfile Policy `json:"closeDepositEntryOnSelectProfile" validate:"oneof=ask yes no"`
	ShowNegativePendingReturns       Policy `json:"showNegativePendingReturns" validate:"oneof=ask yes no"`
	DefaultDateOnNewEntry            string `json:"defaultDateOnNewEntry" validate:"oneof=currentDay previousDay nextDay customDate"`
	CustomDate                       string `json:"customDate,omitempty"` // DD/MM/YYYY, used with customDate.
}

// DefaultSettings returns the preferences a new admin starts with.
func DefaultSettings() Settings {
	return Settings{
		ExportFileType:                   "ask",
		ExportDataSize:                   "ask",
		OldEntryWhenDateEdited:           PolicyAsk,
		AskForConfirmationOnEdit:         PolicyAlwaysYes,
		AskForConfirmationOnDuplicate:    PolicyAlwaysYes,
		AskForConfirmationOnNewAddress:   PolicyAlwaysYes,
		CloseDepositEntryOnSelectProfile: PolicyAlwaysYes,
		ShowNegativePendingReturns:       PolicyAlwaysNo,
		DefaultDateOnNewEntry:            EntryDateCurrentDay,
	}
}

// ShowNegativePending reports whether over-returned customers are listed.
func (s Settings) ShowNegativePending() bool {
	return s.ShowNegativePendingReturns == PolicyAlwaysYes
}

// DefaultEntryDate returns the date a new entry form starts with, as DD/MM/YYYY.
func (s Settings) DefaultEntryDate(now time.Time) string {
	switch s.DefaultDateOnNewEntry {
	case EntryDatePreviousDay:
		return now.AddDate(0, 0, -1).Format(EntryDateLayout)
	case EntryDateNextDay:
		return now.AddDate(0, 0, 1).Format(EntryDateLayout)
	case EntryDateCustom:
		if _, err := ParseEntryDate(s.CustomDate); err == nil {
			return s.CustomDate
		}

		return now.Format(EntryDateLayout)
	default:
		return now.Format(EntryDateLayout)
	}
}
