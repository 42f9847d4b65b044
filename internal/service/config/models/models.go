package models

import "github.com/m04kA/SMC-TableReservation/internal/domain"

// ConfigResponse параметры каталога слотов для виджета
type ConfigResponse struct {
	StartHour     int      `json:"startHour"`
	EndHour       int      `json:"endHour"`
	StepMinutes   int      `json:"stepMinutes"`
	MaxPerSlot    int      `json:"maxPerSlot"`
	WindowDays    int      `json:"windowDays"`
	Slots         []string `json:"slots"`
	Purposes      []string `json:"purposes"`
	MaxNoteLength int      `json:"maxNoteLength"`
}

// DateResponse вариант выбора даты
type DateResponse struct {
	Value string `json:"value"` // YYYY-MM-DD
	Label string `json:"label"` // MM/DD (дн)
	Today bool   `json:"today"`
}

// DatesResponse список дат, доступных для бронирования
type DatesResponse struct {
	Dates []DateResponse `json:"dates"`
}

// FromDomainDates конвертирует domain даты в response
func FromDomainDates(dates []domain.BookableDate) *DatesResponse {
	result := make([]DateResponse, 0, len(dates))
	for _, d := range dates {
		result = append(result, DateResponse{
			Value: d.Value,
			Label: d.Label,
			Today: d.Today,
		})
	}
	return &DatesResponse{Dates: result}
}
