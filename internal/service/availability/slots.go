// Package availability генерирует каталог слотов и считает занятость (дата, время).
package availability

import (
	"fmt"

	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

// GenerateSlots возвращает метки времени с шагом stepMinutes от startHour:00
// до endHour:00 включительно. Метки позже endHour:00 не генерируются.
func GenerateSlots(startHour, endHour, stepMinutes int) ([]types.TimeString, error) {
	if startHour < 0 || endHour > 23 || startHour > endHour {
		return nil, fmt.Errorf("%w: hours %d..%d", ErrInvalidCatalog, startHour, endHour)
	}
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: step %d", ErrInvalidCatalog, stepMinutes)
	}

	first := startHour * 60
	last := endHour * 60

	slots := make([]types.TimeString, 0, (last-first)/stepMinutes+1)
	for minutes := first; minutes <= last; minutes += stepMinutes {
		slot, err := types.NewTimeStringFromMinutes(minutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
