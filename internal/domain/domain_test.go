package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotState(t *testing.T) {
	s := SlotState{StartTime: "10:30", Booked: 2, Capacity: 3}
	assert.False(t, s.IsFull())
	assert.Equal(t, 1, s.AvailableSpots())
	assert.Equal(t, "10:30", s.Label())

	s.Booked = 3
	assert.True(t, s.IsFull())
	assert.Equal(t, 0, s.AvailableSpots())
	assert.Equal(t, "10:30"+FullSlotSuffix, s.Label())
}

func TestPurposeIsValid(t *testing.T) {
	assert.True(t, PurposeBirthday.IsValid())
	assert.False(t, Purpose("karaoke").IsValid())
}

func TestReservationDecodesLegacyPeople(t *testing.T) {
	raw := `{"name":"Ann","phone":"0912345678","email":"a@b.co","people":"4","date":"2026-10-20","time":"10:30","purpose":["family"],"note":"","createdAt":"2026-10-19T08:00:00Z"}`

	var r Reservation
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, PartySize(4), r.People)
	assert.Equal(t, SlotKey{Date: "2026-10-20", Time: "10:30"}, r.SlotKey())

	var bad Reservation
	assert.Error(t, json.Unmarshal([]byte(`{"people":"many"}`), &bad))
}

func TestReservationClone(t *testing.T) {
	r := &Reservation{Name: "Ann", Purpose: []Purpose{PurposeFamily}}
	c := r.Clone()
	c.Purpose[0] = PurposeOther

	assert.Equal(t, PurposeFamily, r.Purpose[0])
	assert.Nil(t, (*Reservation)(nil).Clone())
}

func TestValidationResult(t *testing.T) {
	result := ValidationResult{RuleName: true, RulePurpose: false, RuleTime: true, RulePhone: false}

	assert.False(t, result.Valid())
	assert.Equal(t, []Rule{RulePhone, RulePurpose}, result.Failed())
	assert.True(t, ValidationResult{RuleName: true}.Valid())
}
