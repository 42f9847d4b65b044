package handlers

import (
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
	reservationModels "github.com/m04kA/SMC-TableReservation/internal/service/reservations/models"
	"github.com/m04kA/SMC-TableReservation/internal/usecase/get_available_slots"
)

// SlotResponse состояние слота в ответе API
type SlotResponse struct {
	StartTime      string `json:"startTime"`
	Label          string `json:"label"`
	Booked         int    `json:"booked"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
	Full           bool   `json:"full"`
}

// NoticeResponse уведомление для посетителя
type NoticeResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SessionResponse снимок сессии формы
type SessionResponse struct {
	SessionID    string                                 `json:"sessionId"`
	State        string                                 `json:"state"`
	Date         string                                 `json:"date"`
	SelectedTime *string                                `json:"selectedTime"`
	Slots        []SlotResponse                         `json:"slots"`
	Validation   map[string]bool                        `json:"validation,omitempty"`
	Valid        *bool                                  `json:"valid,omitempty"`
	Draft        *reservationModels.ReservationResponse `json:"draft,omitempty"`
	Summary      string                                 `json:"summary,omitempty"`
	Notice       *NoticeResponse                        `json:"notice,omitempty"`
	InFlight     bool                                   `json:"inFlight"`
}

// FromSlots конвертирует слоты use case в response
func FromSlots(slots []get_available_slots.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, SlotResponse{
			StartTime:      s.StartTime.String(),
			Label:          s.Label,
			Booked:         s.Booked,
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
			Full:           s.IsFull,
		})
	}
	return result
}

// FromFlowView конвертирует снимок контроллера в response
func FromFlowView(sessionID string, v flow.View) *SessionResponse {
	resp := &SessionResponse{
		SessionID: sessionID,
		State:     string(v.State),
		Date:      v.Date,
		Slots:     FromSlots(v.Slots),
		Summary:   v.Summary,
		InFlight:  v.InFlight,
	}

	if !v.SelectedTime.IsZero() {
		selected := v.SelectedTime.String()
		resp.SelectedTime = &selected
	}

	if v.Validation != nil {
		resp.Validation = make(map[string]bool, len(v.Validation))
		for rule, passed := range v.Validation {
			resp.Validation[string(rule)] = passed
		}
		valid := v.Validation.Valid()
		resp.Valid = &valid
	}

	if v.Draft != nil {
		draft := reservationModels.FromDomainReservation(v.Draft)
		resp.Draft = &draft
	}

	if v.Notice != nil {
		resp.Notice = &NoticeResponse{Kind: string(v.Notice.Kind), Message: v.Notice.Message}
	}

	return resp
}
