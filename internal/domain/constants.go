package domain

// Default slot catalog and capacity
const (
	DefaultSlotStartHour   = 10
	DefaultSlotEndHour     = 20
	DefaultSlotStepMinutes = 30
	DefaultMaxPerSlot      = 3
	DefaultBookingWindow   = 7 // today + 6 days
)

// Storage keys
const (
	ReservationsKey = "restaurant_bookings_v1"
	DarkModeKey     = "darkMode"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Display strings
const (
	FullSlotSuffix       = " (мест нет)"
	TodayLabelPrefix     = "Сегодня "
	EmptyNotePlaceholder = "нет"
)

// MaxNoteLength ограничение длины комментария к бронированию
const MaxNoteLength = 500
