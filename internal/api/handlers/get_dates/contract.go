package get_dates

import "github.com/m04kA/SMC-TableReservation/internal/service/config/models"

type ConfigService interface {
	GetDates() *models.DatesResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
