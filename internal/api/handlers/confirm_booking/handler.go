package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	"github.com/m04kA/SMC-TableReservation/internal/api/middleware"
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
	"github.com/m04kA/SMC-TableReservation/internal/usecase/commit_booking"
)

const (
	msgNotReviewing     = "нет бронирования для подтверждения"
	msgCommitInProgress = "бронирование уже подтверждается, дождитесь завершения"
)

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle POST /api/v1/sessions/{sessionId}/confirm
// При конфликте и сбое записи тело содержит актуальный снимок сессии с уведомлением
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /sessions/{sessionId}/confirm - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	view, err := controller.Confirm(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrNotReviewing):
			h.logger.Warn("POST /sessions/%s/confirm - Nothing to confirm", id)
			handlers.RespondConflict(w, msgNotReviewing)

		case errors.Is(err, flow.ErrCommitInProgress):
			h.logger.Warn("POST /sessions/%s/confirm - Commit in progress", id)
			handlers.RespondConflict(w, msgCommitInProgress)

		case errors.Is(err, flow.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /sessions/%s/confirm - Slot no longer available: date=%s", id, view.Date)
			handlers.RespondJSON(w, http.StatusConflict, handlers.FromFlowView(id, view))

		case errors.Is(err, flow.ErrDateExpired):
			h.logger.Warn("POST /sessions/%s/confirm - Booking date expired, form reset: %v", id, err)
			handlers.RespondJSON(w, http.StatusConflict, handlers.FromFlowView(id, view))

		case errors.Is(err, commit_booking.ErrConflict):
			h.logger.Warn("POST /sessions/%s/confirm - Storage contention, draft kept: %v", id, err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, handlers.FromFlowView(id, view))

		case errors.Is(err, flow.ErrCommitFailed):
			h.logger.Error("POST /sessions/%s/confirm - Failed to save booking, draft kept: %v", id, err)
			handlers.RespondJSON(w, http.StatusInternalServerError, handlers.FromFlowView(id, view))

		default:
			h.logger.Error("POST /sessions/%s/confirm - Failed to confirm booking: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/%s/confirm - Booking confirmed", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromFlowView(id, view))
}
