package config

import (
	"fmt"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/service/availability"
	"github.com/m04kA/SMC-TableReservation/internal/service/config/models"
)

// Service отдает виджету параметры каталога слотов и список дат
type Service struct {
	config       domain.SlotsConfig
	catalog      []string
	timeProvider TimeProvider
	logger       Logger
}

// NewService проверяет параметры каталога и создает сервис
func NewService(config domain.SlotsConfig, timeProvider TimeProvider, logger Logger) (*Service, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	slots, err := availability.GenerateSlots(config.StartHour, config.EndHour, config.StepMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	catalog := make([]string, 0, len(slots))
	for _, s := range slots {
		catalog = append(catalog, s.String())
	}

	logger.Info("Config: %d slots from %02d:00 to %02d:00 every %d min, %d per slot, %d days window",
		len(catalog), config.StartHour, config.EndHour, config.StepMinutes, config.MaxPerSlot, config.WindowDays)

	return &Service{
		config:       config,
		catalog:      catalog,
		timeProvider: timeProvider,
		logger:       logger,
	}, nil
}

// GetConfig возвращает параметры каталога и список целей визита
func (s *Service) GetConfig() *models.ConfigResponse {
	purposes := make([]string, 0, len(domain.Purposes))
	for _, p := range domain.Purposes {
		purposes = append(purposes, string(p))
	}

	return &models.ConfigResponse{
		StartHour:     s.config.StartHour,
		EndHour:       s.config.EndHour,
		StepMinutes:   s.config.StepMinutes,
		MaxPerSlot:    s.config.MaxPerSlot,
		WindowDays:    s.config.WindowDays,
		Slots:         append([]string(nil), s.catalog...),
		Purposes:      purposes,
		MaxNoteLength: domain.MaxNoteLength,
	}
}

// GetDates возвращает даты, доступные для бронирования, начиная с сегодняшней
func (s *Service) GetDates() *models.DatesResponse {
	dates := availability.BookableDates(s.timeProvider.Now(), s.config.WindowDays)
	return models.FromDomainDates(dates)
}

// validateConfig проверяет параметры, которые не проверяет генератор слотов
func validateConfig(config domain.SlotsConfig) error {
	if config.MaxPerSlot <= 0 {
		return fmt.Errorf("%w: maxPerSlot must be positive", ErrInvalidConfig)
	}
	if config.WindowDays <= 0 {
		return fmt.Errorf("%w: windowDays must be positive", ErrInvalidConfig)
	}
	return nil
}
