package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/service/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования (сегодня + windowDays-1)
func validateDate(date string, now time.Time, windowDays int) error {
	if !availability.IsBookableDate(date, now, windowDays) {
		return fmt.Errorf("%w: can only book %d days ahead starting today", ErrDateNotBookable, windowDays)
	}
	return nil
}
