package reset_form

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	"github.com/m04kA/SMC-TableReservation/internal/api/middleware"
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
)

const msgCommitInProgress = "бронирование уже подтверждается, дождитесь завершения"

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle POST /api/v1/sessions/{sessionId}/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /sessions/{sessionId}/reset - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	view, err := controller.Reset(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrCommitInProgress):
			h.logger.Warn("POST /sessions/%s/reset - Commit in progress", id)
			handlers.RespondConflict(w, msgCommitInProgress)

		default:
			h.logger.Error("POST /sessions/%s/reset - Failed to reset form: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/%s/reset - Form reset: date=%s", id, view.Date)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromFlowView(id, view))
}
