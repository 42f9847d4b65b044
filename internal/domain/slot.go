package domain

import "github.com/m04kA/SMC-TableReservation/pkg/types"

// SlotState is the availability of one catalog slot on a given date
type SlotState struct {
	StartTime types.TimeString
	Booked    int
	Capacity  int
}

// IsFull returns true if the slot cannot accept another reservation
func (s *SlotState) IsFull() bool {
	return s.Booked >= s.Capacity
}

// AvailableSpots returns how many reservations the slot can still take
func (s *SlotState) AvailableSpots() int {
	if s.IsFull() {
		return 0
	}
	return s.Capacity - s.Booked
}

// Label returns the display label, annotated when the slot is full
func (s *SlotState) Label() string {
	if s.IsFull() {
		return s.StartTime.String() + FullSlotSuffix
	}
	return s.StartTime.String()
}

// BookableDate is one option of the date picker
type BookableDate struct {
	Value string // YYYY-MM-DD
	Label string
	Today bool
}
