package commit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/infra/kvstore"
	"github.com/m04kA/SMC-TableReservation/internal/service/availability"
	"github.com/m04kA/SMC-TableReservation/pkg/metrics"
)

// UseCase use case для сохранения подтвержденного бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	config          domain.SlotsConfig
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	config domain.SlotsConfig,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = systemClock{}
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		config:          config,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case сохранения бронирования
// Проверка вместимости и запись выполняются одной атомарной операцией хранилища
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	res := req.Reservation.Clone()
	uc.logger.Info("CommitBooking: date=%s, time=%s, people=%d", res.Date, res.Time, res.People)

	// 2. Дата должна оставаться в окне бронирования на момент подтверждения
	if err := validateBookingWindow(res, uc.timeProvider.Now(), uc.config.WindowDays); err != nil {
		uc.logger.Warn("CommitBooking: %v", err)
		return nil, err
	}

	// 3. Время должно входить в каталог слотов
	if err := validateTimeSlot(res, uc.config); err != nil {
		uc.logger.Warn("CommitBooking: %v", err)
		return nil, err
	}

	// 4. Повторная проверка вместимости внутри атомарной записи
	var booked int
	err := uc.reservationRepo.CreateIf(ctx, res, func(existing []*domain.Reservation) error {
		count := availability.CountFor(res.Date, res.Time, existing)
		if availability.IsFull(count, uc.config.MaxPerSlot) {
			uc.logger.Warn("CommitBooking: slot not available, %d/%d spots taken", count, uc.config.MaxPerSlot)
			return ErrSlotNotAvailable
		}
		booked = count + 1
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrSlotNotAvailable):
		uc.recordCommit(metrics.CommitSlotFull)
		return nil, ErrSlotNotAvailable
	case errors.Is(err, kvstore.ErrConflict):
		uc.recordCommit(metrics.CommitFailed)
		uc.logger.Warn("CommitBooking: concurrent modification: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		uc.recordCommit(metrics.CommitFailed)
		uc.logger.Error("CommitBooking: failed to save reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to save reservation: %v", ErrInternal, err)
	}

	uc.recordCommit(metrics.CommitCommitted)
	uc.logger.Info("CommitBooking: saved, slot %s %s now %d/%d", res.Date, res.Time, booked, uc.config.MaxPerSlot)

	return &Response{
		Reservation:    res,
		Booked:         booked,
		AvailableSpots: uc.config.MaxPerSlot - booked,
	}, nil
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (uc *UseCase) recordCommit(outcome string) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordCommit(outcome)
}
