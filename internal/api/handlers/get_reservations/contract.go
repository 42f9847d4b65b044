package get_reservations

import (
	"context"

	"github.com/m04kA/SMC-TableReservation/internal/service/reservations/models"
)

type ReservationService interface {
	GetByDate(ctx context.Context, date string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
