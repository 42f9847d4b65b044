package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableReservation/internal/api/handlers"
	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
	"github.com/m04kA/SMC-TableReservation/internal/service/sessions"
)

const msgSessionNotFound = "сессия не найдена или истекла"

type sessionKey struct{}

type sessionValue struct {
	id         string
	controller *flow.Controller
}

// SessionRegistry интерфейс реестра сессий формы
type SessionRegistry interface {
	Get(id string) (*flow.Controller, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SessionLoader находит сессию по переменной маршрута {sessionId} и кладет ее в контекст
func SessionLoader(registry SessionRegistry, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := mux.Vars(r)["sessionId"]

			controller, err := registry.Get(id)
			if err != nil {
				if errors.Is(err, sessions.ErrSessionNotFound) {
					logger.Warn("%s %s - Session not found: %v", r.Method, r.URL.Path, err)
					handlers.RespondNotFound(w, msgSessionNotFound)
					return
				}
				logger.Error("%s %s - Failed to load session: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, sessionValue{id: id, controller: controller})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession возвращает id и контроллер сессии, загруженной SessionLoader
func GetSession(ctx context.Context) (string, *flow.Controller, bool) {
	v, ok := ctx.Value(sessionKey{}).(sessionValue)
	if !ok || v.controller == nil {
		return "", nil, false
	}
	return v.id, v.controller, true
}

// WithSession кладет сессию в контекст (для тестов обработчиков)
func WithSession(ctx context.Context, id string, controller *flow.Controller) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionValue{id: id, controller: controller})
}
