package create_session

import (
	"context"

	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
)

type SessionService interface {
	Create(ctx context.Context) (string, flow.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
