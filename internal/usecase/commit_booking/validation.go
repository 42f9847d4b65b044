package commit_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/service/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || req.Reservation == nil {
		return fmt.Errorf("%w: reservation is required", ErrInvalidInput)
	}

	res := req.Reservation

	if _, err := time.Parse(domain.DateFormat, res.Date); err != nil {
		return fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	if err := res.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	if res.People <= 0 {
		return fmt.Errorf("%w: people must be positive", ErrInvalidInput)
	}

	return nil
}

// validateBookingWindow проверяет, что дата все еще входит в окно бронирования
func validateBookingWindow(res *domain.Reservation, now time.Time, windowDays int) error {
	if !availability.IsBookableDate(res.Date, now, windowDays) {
		return fmt.Errorf("%w: date=%s, today=%s", ErrDateNotBookable, res.Date, now.Format(domain.DateFormat))
	}
	return nil
}

// validateTimeSlot проверяет, что время входит в каталог слотов
func validateTimeSlot(res *domain.Reservation, config domain.SlotsConfig) error {
	catalog, err := availability.GenerateSlots(config.StartHour, config.EndHour, config.StepMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	for _, slot := range catalog {
		if slot == res.Time {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, res.Time)
}
