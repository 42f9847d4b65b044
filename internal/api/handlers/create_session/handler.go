package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	"github.com/m04kA/SMC-TableReservation/internal/service/sessions"
)

const msgTooManySessions = "слишком много активных сессий, попробуйте позже"

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
// Открывает форму: дата по умолчанию сегодня, слоты уже отрисованы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, view, err := h.service.Create(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrTooManySessions):
			h.logger.Warn("POST /sessions - Session limit reached")
			handlers.RespondServiceUnavailable(w, msgTooManySessions)

		default:
			h.logger.Error("POST /sessions - Failed to create session: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created: session_id=%s, date=%s", id, view.Date)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromFlowView(id, view))
}
