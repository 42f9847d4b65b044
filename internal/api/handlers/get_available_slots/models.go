package get_available_slots

import (
	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TableReservation/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string                  `json:"date"`
	Slots []handlers.SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:  resp.Date,
		Slots: handlers.FromSlots(resp.Slots),
	}
}
