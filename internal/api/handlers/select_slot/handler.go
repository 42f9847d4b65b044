package select_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	"github.com/m04kA/SMC-TableReservation/internal/api/middleware"
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

const (
	msgInvalidRequest   = "некорректное тело запроса"
	msgInvalidTime      = "некорректное время, ожидается HH:MM"
	msgUnknownSlot      = "такого времени нет в расписании"
	msgSlotFull         = "на это время мест больше нет"
	msgCommitInProgress = "бронирование уже подтверждается, дождитесь завершения"
)

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle PUT /api/v1/sessions/{sessionId}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("PUT /sessions/{sessionId}/slot - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/%s/slot - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		h.logger.Warn("PUT /sessions/%s/slot - Invalid time: time=%s", id, req.Time)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	view, err := controller.SelectSlot(startTime)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrUnknownSlot):
			h.logger.Warn("PUT /sessions/%s/slot - Unknown slot: time=%s", id, startTime)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, flow.ErrSlotFull):
			h.logger.Warn("PUT /sessions/%s/slot - Slot is full: date=%s, time=%s", id, view.Date, startTime)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, flow.ErrCommitInProgress):
			h.logger.Warn("PUT /sessions/%s/slot - Commit in progress", id)
			handlers.RespondConflict(w, msgCommitInProgress)

		default:
			h.logger.Error("PUT /sessions/%s/slot - Failed to select slot: time=%s, error=%v", id, startTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/%s/slot - Slot selected: date=%s, time=%s", id, view.Date, startTime)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromFlowView(id, view))
}
