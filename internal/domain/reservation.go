package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

// Purpose is an enumerated reason for the visit
type Purpose string

const (
	PurposeBirthday    Purpose = "birthday"
	PurposeAnniversary Purpose = "anniversary"
	PurposeBusiness    Purpose = "business"
	PurposeFamily      Purpose = "family"
	PurposeDate        Purpose = "date"
	PurposeOther       Purpose = "other"
)

// Purposes lists every accepted purpose in display order
var Purposes = []Purpose{
	PurposeBirthday,
	PurposeAnniversary,
	PurposeBusiness,
	PurposeFamily,
	PurposeDate,
	PurposeOther,
}

// IsValid returns true if the purpose belongs to the enumeration
func (p Purpose) IsValid() bool {
	for _, known := range Purposes {
		if p == known {
			return true
		}
	}
	return false
}

// PartySize is the number of guests.
// Older records stored it as a string, so both forms are decoded.
type PartySize int

func (p *PartySize) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = PartySize(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("party size: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("party size %q: %w", s, err)
	}
	*p = PartySize(n)
	return nil
}

// Reservation is a persisted booking record.
// Records are immutable once stored and identified only by their position in the stored list.
type Reservation struct {
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Email     string           `json:"email"`
	People    PartySize        `json:"people"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Time      types.TimeString `json:"time"` // HH:MM
	Purpose   []Purpose        `json:"purpose"`
	Note      string           `json:"note"`
	CreatedAt time.Time        `json:"createdAt"`
}

// SlotKey returns the (date, time) pair the reservation occupies
func (r *Reservation) SlotKey() SlotKey {
	return SlotKey{Date: r.Date, Time: r.Time}
}

// Clone returns a deep copy, used to hand out drafts without sharing slices
func (r *Reservation) Clone() *Reservation {
	if r == nil {
		return nil
	}
	c := *r
	c.Purpose = append([]Purpose(nil), r.Purpose...)
	return &c
}

// SlotKey identifies one reservable (date, time) pair
type SlotKey struct {
	Date string
	Time types.TimeString
}
