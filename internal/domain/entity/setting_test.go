package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Resolve(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name         string
		policy       Policy
		answer       *bool
		wantDecision bool
		wantPrompt   bool
	}{
		{name: "always yes ignores answer", policy: PolicyAlwaysYes, answer: &no, wantDecision: true},
		{name: "always no ignores answer", policy: PolicyAlwaysNo, answer: &yes, wantDecision: false},
		{name: "ask without answer prompts", policy: PolicyAsk, answer: nil, wantPrompt: true},
		{name: "ask with yes", policy: PolicyAsk, answer: &yes, wantDecision: true},
		{name: "ask with no", policy: PolicyAsk, answer: &no, wantDecision: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, prompt := tt.policy.Resolve(tt.answer)
			assert.Equal(t, tt.wantDecision, decision)
			assert.Equal(t, tt.wantPrompt, prompt)
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("yes")
	require.NoError(t, err)
	assert.Equal(t, PolicyAlwaysYes, p)

	_, err = ParsePolicy("maybe")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestSettings_DefaultEntryDate(t *testing.T) {
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.Local)

	s := DefaultSettings()
	assert.Equal(t, "01/03/2024", s.DefaultEntryDate(now))

	s.DefaultDateOnNewEntry = EntryDatePreviousDay
	assert.Equal(t, "29/02/2024", s.DefaultEntryDate(now))

	s.DefaultDateOnNewEntry = EntryDateNextDay
	assert.Equal(t, "02/03/2024", s.DefaultEntryDate(now))

	s.DefaultDateOnNewEntry = EntryDateCustom
	s.CustomDate = "15/08/2023"
	assert.Equal(t, "15/08/2023", s.DefaultEntryDate(now))

	s.CustomDate = "garbage"
	assert.Equal(t, "01/03/2024", s.DefaultEntryDate(now))
}

func TestProductQuantity_PendingUnits(t *testing.T) {
	returnable := ProductQuantity{
		ProductData:   ProductSnapshot{ProductID: "P1", ProductReturnable: true},
		SentUnits:     10,
		RecievedUnits: 4,
	}
	pending := returnable.PendingUnits()
	require.NotNil(t, pending)
	assert.Equal(t, 6, *pending)

	oneWay := ProductQuantity{
		ProductData: ProductSnapshot{ProductID: "P2"},
		SentUnits:   3,
	}
	assert.Nil(t, oneWay.PendingUnits())
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, SeverityGreen, SeverityFor(3, 0))
	assert.Equal(t, SeverityRed, SeverityFor(0, 2))
	assert.Equal(t, SeverityYellow, SeverityFor(1, 1))
	assert.Equal(t, SeverityGreen, SeverityFor(0, 0))
}

func TestEntryTransaction_CloneIsDeep(t *testing.T) {
	original := &EntryTransaction{
		Data: EntryData{
			TransactionID: "20240101_100000_AAAAA",
			Tags:          []string{"t1"},
			DeliveryBoyList: []DeliveryDone{{
				UserData:     UserData{UserID: "d1"},
				DeliveryDone: []DeliveryUnits{{ProductID: "P1", SentUnits: 1}},
			}},
		},
		Others: Audit{MoveIDs: []string{"m1"}},
	}

	clone := original.Clone()
	clone.Data.Tags[0] = "changed"
	clone.Data.DeliveryBoyList[0].DeliveryDone[0].SentUnits = 9
	clone.Others.MoveIDs = append(clone.Others.MoveIDs, "m2")

	assert.Equal(t, "t1", original.Data.Tags[0])
	assert.Equal(t, 1, original.Data.DeliveryBoyList[0].DeliveryDone[0].SentUnits)
	assert.Equal(t, []string{"m1"}, original.Others.MoveIDs)
}
