package flow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableReservation/internal/usecase/commit_booking"
	"github.com/m04kA/SMC-TableReservation/internal/usecase/get_available_slots"
)

// SlotsRenderer возвращает состояние слотов на дату
type SlotsRenderer interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// BookingCommitter атомарно сохраняет черновик бронирования
type BookingCommitter interface {
	Execute(ctx context.Context, req *commit_booking.Request) (*commit_booking.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс для учета проваленных правил валидации
type Metrics interface {
	RecordValidationFailure(rule string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
