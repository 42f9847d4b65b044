// Package api собирает HTTP-маршруты сервиса бронирования столиков.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/confirm_booking"
	createSessionHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/create_session"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/get_available_slots"
	getConfigHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/get_config"
	getDatesHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/get_dates"
	getReservationsHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/get_reservations"
	getSessionHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/get_session"
	getThemeHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/get_theme"
	resetFormHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/reset_form"
	selectDateHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/select_date"
	selectSlotHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/select_slot"
	submitBookingHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/submit_booking"
	toggleThemeHandler "github.com/m04kA/SMC-TableReservation/internal/api/handlers/toggle_theme"
	"github.com/m04kA/SMC-TableReservation/internal/api/middleware"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SessionService создание и поиск сессий формы
type SessionService interface {
	createSessionHandler.SessionService
	middleware.SessionRegistry
}

// ConfigService параметры каталога и окно дат
type ConfigService interface {
	getConfigHandler.ConfigService
	getDatesHandler.ConfigService
}

// ThemeService чтение и переключение темы
type ThemeService interface {
	getThemeHandler.PreferencesService
	toggleThemeHandler.PreferencesService
}

// Dependencies зависимости роутера
type Dependencies struct {
	Config       ConfigService
	Slots        getAvailableSlotsHandler.GetAvailableSlotsUseCase
	Sessions     SessionService
	Reservations getReservationsHandler.ReservationService
	Theme        ThemeService

	// RateLimiter ограничивает отправку и подтверждение формы; nil - без ограничения
	RateLimiter *middleware.RateLimiter
	AdminToken  string

	// HTTPMetrics и MetricsHandler опциональны
	HTTPMetrics    middleware.HTTPMetrics
	MetricsHandler http.Handler
	MetricsPath    string

	Logger Logger
}

// NewRouter регистрирует все маршруты /api/v1
func NewRouter(deps Dependencies) *mux.Router {
	log := deps.Logger

	// Инициализируем handlers
	getConfig := getConfigHandler.NewHandler(deps.Config, log)
	getDates := getDatesHandler.NewHandler(deps.Config, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(deps.Slots, log)
	getReservations := getReservationsHandler.NewHandler(deps.Reservations, log)
	getTheme := getThemeHandler.NewHandler(deps.Theme, log)
	toggleTheme := toggleThemeHandler.NewHandler(deps.Theme, log)
	createSession := createSessionHandler.NewHandler(deps.Sessions, log)
	getSession := getSessionHandler.NewHandler(log)
	selectDate := selectDateHandler.NewHandler(log)
	selectSlot := selectSlotHandler.NewHandler(log)
	submitBooking := submitBookingHandler.NewHandler(log)
	confirmBooking := confirmBookingHandler.NewHandler(log)
	cancelBooking := cancelBookingHandler.NewHandler(log)
	resetForm := resetFormHandler.NewHandler(log)

	r := mux.NewRouter()

	if deps.HTTPMetrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.HTTPMetrics))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if deps.MetricsHandler != nil && deps.MetricsPath != "" {
		r.Handle(deps.MetricsPath, deps.MetricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Расписание и окно дат
	api.HandleFunc("/config", getConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/dates", getDates.Handle).Methods(http.MethodGet)

	// Состояние слотов на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Тема оформления
	api.HandleFunc("/theme", getTheme.Handle).Methods(http.MethodGet)
	api.HandleFunc("/theme/toggle", toggleTheme.Handle).Methods(http.MethodPost)

	// ============================================================
	// FORM SESSIONS
	// ============================================================

	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)

	session := api.PathPrefix("/sessions/{sessionId}").Subrouter()
	session.Use(middleware.SessionLoader(deps.Sessions, log))

	session.HandleFunc("", getSession.Handle).Methods(http.MethodGet)
	session.HandleFunc("/date", selectDate.Handle).Methods(http.MethodPut)
	session.HandleFunc("/slot", selectSlot.Handle).Methods(http.MethodPut)
	session.HandleFunc("/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	session.HandleFunc("/reset", resetForm.Handle).Methods(http.MethodPost)

	// Отправка и подтверждение формы под rate limit
	var submit, confirm http.Handler = http.HandlerFunc(submitBooking.Handle), http.HandlerFunc(confirmBooking.Handle)
	if deps.RateLimiter != nil {
		submit = deps.RateLimiter.Middleware(submit)
		confirm = deps.RateLimiter.Middleware(confirm)
	}
	session.Handle("/submit", submit).Methods(http.MethodPost)
	session.Handle("/confirm", confirm).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES (требуют X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/reservations").Subrouter()
	admin.Use(middleware.AdminAuth(deps.AdminToken))
	admin.HandleFunc("", getReservations.Handle).Methods(http.MethodGet)

	return r
}
