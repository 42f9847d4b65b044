package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/service/availability"
)

// UseCase use case для получения состояния слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	config          domain.SlotsConfig
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	config domain.SlotsConfig,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		config:          config,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем окно бронирования
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.config.WindowDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date=%s rejected: %v", req.Date, err)
		return nil, err
	}

	// 3. Генерируем каталог слотов
	catalog, err := availability.GenerateSlots(uc.config.StartHour, uc.config.EndHour, uc.config.StepMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 4. Получаем бронирования
	reservations, err := uc.reservationRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Индекс строится один раз, дальше подсчет по каждому слоту без повторного прохода
	index := availability.NewIndex(reservations)
	states := index.States(req.Date, catalog, uc.config.MaxPerSlot)

	slots := make([]Slot, 0, len(states))
	for i := range states {
		state := &states[i]
		slots = append(slots, Slot{
			StartTime:      state.StartTime,
			Label:          state.Label(),
			Booked:         state.Booked,
			AvailableSpots: state.AvailableSpots(),
			TotalSpots:     state.Capacity,
			IsFull:         state.IsFull(),
		})
	}

	uc.logger.Info("GetAvailableSlots: date=%s, %d slots, %d reservations total",
		req.Date, len(slots), len(reservations))

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}
