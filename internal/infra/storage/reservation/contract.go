package reservation

import (
	"context"

	"github.com/m04kA/SMC-TableReservation/internal/infra/kvstore"
)

// Store хранилище ключ-значение, в котором лежит список бронирований
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Update(ctx context.Context, key string, fn kvstore.UpdateFunc) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
