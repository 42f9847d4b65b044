// Package preferences отвечает за настройку темной темы виджета.
package preferences

import (
	"context"
	"errors"
	"fmt"
)

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("preferences.service: internal error")

// PreferencesRepository интерфейс репозитория настроек
type PreferencesRepository interface {
	GetDarkMode(ctx context.Context) (bool, error)
	ToggleDarkMode(ctx context.Context) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ThemeResponse состояние темы
type ThemeResponse struct {
	DarkMode bool `json:"darkMode"`
}

// Service сервис настроек
type Service struct {
	repo   PreferencesRepository
	logger Logger
}

// NewService создает сервис настроек
func NewService(repo PreferencesRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// IsDarkMode возвращает текущее состояние темы
func (s *Service) IsDarkMode(ctx context.Context) (*ThemeResponse, error) {
	enabled, err := s.repo.GetDarkMode(ctx)
	if err != nil {
		s.logger.Error("IsDarkMode: repository error: %v", err)
		return nil, fmt.Errorf("%w: IsDarkMode - repository error: %v", ErrInternal, err)
	}
	return &ThemeResponse{DarkMode: enabled}, nil
}

// Toggle переключает тему и возвращает новое состояние
func (s *Service) Toggle(ctx context.Context) (*ThemeResponse, error) {
	enabled, err := s.repo.ToggleDarkMode(ctx)
	if err != nil {
		s.logger.Error("Toggle: repository error: %v", err)
		return nil, fmt.Errorf("%w: Toggle - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("Toggle: dark mode is now %t", enabled)
	return &ThemeResponse{DarkMode: enabled}, nil
}
