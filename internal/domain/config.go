package domain

// SlotsConfig describes the slot catalog and per-slot capacity
type SlotsConfig struct {
	StartHour   int
	EndHour     int
	StepMinutes int
	MaxPerSlot  int
	WindowDays  int
}

// DefaultSlotsConfig returns the configuration used when nothing is configured
func DefaultSlotsConfig() SlotsConfig {
	return SlotsConfig{
		StartHour:   DefaultSlotStartHour,
		EndHour:     DefaultSlotEndHour,
		StepMinutes: DefaultSlotStepMinutes,
		MaxPerSlot:  DefaultMaxPerSlot,
		WindowDays:  DefaultBookingWindow,
	}
}
