package toggle_theme

import (
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
)

type Handler struct {
	service PreferencesService
	logger  Logger
}

func NewHandler(service PreferencesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/theme/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Toggle(r.Context())
	if err != nil {
		h.logger.Error("POST /theme/toggle - Failed to toggle theme: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /theme/toggle - Theme toggled: dark_mode=%t", result.DarkMode)
	handlers.RespondJSON(w, http.StatusOK, result)
}
