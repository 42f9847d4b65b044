// Package sessions хранит сессии формы бронирования (одна вкладка браузера = одна сессия).
package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
)

var (
	// ErrSessionNotFound возвращается для неизвестной или истекшей сессии
	ErrSessionNotFound = errors.New("sessions.service: session not found")

	// ErrTooManySessions возвращается при достижении лимита сессий
	ErrTooManySessions = errors.New("sessions.service: too many active sessions")
)

// ControllerFactory создает контроллер новой сессии
type ControllerFactory func() *flow.Controller

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс для учета количества сессий
type Metrics interface {
	SetActiveSessions(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры реестра сессий
type Config struct {
	TTL         time.Duration // Время жизни неактивной сессии
	MaxSessions int           // 0 означает без ограничения
}

// Service реестр сессий формы
// Истекшие сессии удаляются лениво при создании и поиске
type Service struct {
	mu       sync.Mutex
	sessions map[string]*flow.Controller

	newController ControllerFactory
	config        Config
	timeProvider  TimeProvider
	metrics       Metrics
	logger        Logger
}

// NewService создает реестр сессий
func NewService(newController ControllerFactory, config Config, timeProvider TimeProvider, metrics Metrics, logger Logger) *Service {
	return &Service{
		sessions:      make(map[string]*flow.Controller),
		newController: newController,
		config:        config,
		timeProvider:  timeProvider,
		metrics:       metrics,
		logger:        logger,
	}
}

// Create создает сессию с выбранной сегодняшней датой
func (s *Service) Create(ctx context.Context) (string, flow.View, error) {
	s.mu.Lock()
	s.evictExpiredLocked()
	if s.config.MaxSessions > 0 && len(s.sessions) >= s.config.MaxSessions {
		s.mu.Unlock()
		s.logger.Warn("Sessions: limit of %d sessions reached", s.config.MaxSessions)
		return "", flow.View{}, ErrTooManySessions
	}
	s.mu.Unlock()

	controller := s.newController()
	view, err := controller.Start(ctx)
	if err != nil {
		return "", view, fmt.Errorf("start session: %w", err)
	}

	id := uuid.NewString()

	s.mu.Lock()
	if s.config.MaxSessions > 0 && len(s.sessions) >= s.config.MaxSessions {
		s.mu.Unlock()
		return "", flow.View{}, ErrTooManySessions
	}
	s.sessions[id] = controller
	count := len(s.sessions)
	s.mu.Unlock()

	s.reportActive(count)
	s.logger.Info("Sessions: created session id=%s, active=%d", id, count)
	return id, view, nil
}

// Get возвращает контроллер сессии
func (s *Service) Get(id string) (*flow.Controller, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: malformed id %q", ErrSessionNotFound, id)
	}

	s.mu.Lock()
	evicted := s.evictExpiredLocked()
	controller, ok := s.sessions[id]
	count := len(s.sessions)
	s.mu.Unlock()

	if evicted > 0 {
		s.reportActive(count)
	}
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrSessionNotFound, id)
	}
	controller.Touch()
	return controller, nil
}

// Count возвращает количество активных сессий
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// evictExpiredLocked удаляет сессии, неактивные дольше TTL; вызывается под мьютексом
func (s *Service) evictExpiredLocked() int {
	if s.config.TTL <= 0 {
		return 0
	}

	deadline := s.timeProvider.Now().Add(-s.config.TTL)
	evicted := 0
	for id, controller := range s.sessions {
		if controller.LastActive().Before(deadline) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Info("Sessions: evicted %d expired sessions", evicted)
	}
	return evicted
}

func (s *Service) reportActive(n int) {
	if s.metrics == nil {
		return
	}
	s.metrics.SetActiveSessions(n)
}
