package select_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	"github.com/m04kA/SMC-TableReservation/internal/api/middleware"
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
)

const (
	msgInvalidRequest   = "некорректное тело запроса"
	msgInvalidDate      = "на эту дату бронирование недоступно"
	msgCommitInProgress = "бронирование уже подтверждается, дождитесь завершения"
)

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle PUT /api/v1/sessions/{sessionId}/date
// Меняет дату и перерисовывает слоты; выбранное время сбрасывается
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("PUT /sessions/{sessionId}/date - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/%s/date - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	view, err := controller.SelectDate(r.Context(), req.Date)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrInvalidDate):
			h.logger.Warn("PUT /sessions/%s/date - Invalid date: date=%s", id, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, flow.ErrCommitInProgress):
			h.logger.Warn("PUT /sessions/%s/date - Commit in progress", id)
			handlers.RespondConflict(w, msgCommitInProgress)

		default:
			h.logger.Error("PUT /sessions/%s/date - Failed to select date: date=%s, error=%v", id, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/%s/date - Date selected: date=%s", id, view.Date)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromFlowView(id, view))
}
