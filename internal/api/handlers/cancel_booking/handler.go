package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	"github.com/m04kA/SMC-TableReservation/internal/api/middleware"
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
)

const (
	msgNotReviewing     = "нет бронирования для отмены"
	msgCommitInProgress = "бронирование уже подтверждается, дождитесь завершения"
)

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle POST /api/v1/sessions/{sessionId}/cancel
// Возврат к редактированию: значения полей и выбранное время сохраняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /sessions/{sessionId}/cancel - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	view, err := controller.Cancel()
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrNotReviewing):
			h.logger.Warn("POST /sessions/%s/cancel - Nothing to cancel", id)
			handlers.RespondConflict(w, msgNotReviewing)

		case errors.Is(err, flow.ErrCommitInProgress):
			h.logger.Warn("POST /sessions/%s/cancel - Commit in progress", id)
			handlers.RespondConflict(w, msgCommitInProgress)

		default:
			h.logger.Error("POST /sessions/%s/cancel - Failed to cancel review: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/%s/cancel - Review cancelled", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromFlowView(id, view))
}
