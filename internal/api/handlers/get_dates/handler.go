package get_dates

import (
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := h.service.GetDates()

	h.logger.Info("GET /dates - Dates retrieved: count=%d", len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
