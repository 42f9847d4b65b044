package reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/service/reservations/models"
)

// Service сервис просмотра бронирований для персонала ресторана
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByDate возвращает бронирования на дату, упорядоченные по времени и моменту создания
func (s *Service) GetByDate(ctx context.Context, date string) (*models.ReservationListResponse, error) {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		s.logger.Warn("GetByDate: invalid date=%q", date)
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	list, err := s.reservationRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByDate: found %d reservations for date=%s", len(list), date)
	return models.FromDomainReservations(date, list), nil
}
