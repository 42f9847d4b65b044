package flow

import (
	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

// View снимок состояния сессии формы для отображения
type View struct {
	State        domain.FlowState
	Date         string
	SelectedTime types.TimeString // Пустая строка, если время не выбрано
	Slots        []get_available_slots.Slot
	Validation   domain.ValidationResult // Результат последней отправки формы
	Draft        *domain.Reservation     // Черновик на подтверждении
	Summary      string                  // HTML-сводка черновика, значения экранированы
	Notice       *domain.Notice
	InFlight     bool
}
