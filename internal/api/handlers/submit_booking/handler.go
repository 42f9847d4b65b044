package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	"github.com/m04kA/SMC-TableReservation/internal/api/middleware"
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
)

const (
	msgInvalidRequest   = "некорректное тело запроса"
	msgCommitInProgress = "бронирование уже подтверждается, дождитесь завершения"
)

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle POST /api/v1/sessions/{sessionId}/submit
// 200 - форма валидна, черновик на подтверждении; 422 - результат проверки по правилам в теле
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("POST /sessions/{sessionId}/submit - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/%s/submit - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	view, err := controller.Submit(req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrCommitInProgress):
			h.logger.Warn("POST /sessions/%s/submit - Commit in progress", id)
			handlers.RespondConflict(w, msgCommitInProgress)

		default:
			h.logger.Error("POST /sessions/%s/submit - Failed to submit form: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !view.Validation.Valid() {
		h.logger.Info("POST /sessions/%s/submit - Form rejected: failed=%v", id, view.Validation.Failed())
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, handlers.FromFlowView(id, view))
		return
	}

	h.logger.Info("POST /sessions/%s/submit - Draft ready for review: date=%s, time=%s", id, view.Date, view.SelectedTime)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromFlowView(id, view))
}
