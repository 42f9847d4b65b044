package toggle_theme

import (
	"context"

	"github.com/m04kA/SMC-TableReservation/internal/service/preferences"
)

type PreferencesService interface {
	Toggle(ctx context.Context) (*preferences.ThemeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
