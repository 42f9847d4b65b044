package models

import (
	"time"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
)

// ReservationResponse бронирование в ответе API
type ReservationResponse struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	People    int       `json:"people"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Purpose   []string  `json:"purpose"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReservationListResponse список бронирований на дату
type ReservationListResponse struct {
	Date         string                `json:"date"`
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainReservation конвертирует domain.Reservation в response
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	purposes := make([]string, 0, len(r.Purpose))
	for _, p := range r.Purpose {
		purposes = append(purposes, string(p))
	}

	return ReservationResponse{
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		People:    int(r.People),
		Date:      r.Date,
		Time:      r.Time.String(),
		Purpose:   purposes,
		Note:      r.Note,
		CreatedAt: r.CreatedAt,
	}
}

// FromDomainReservations конвертирует список бронирований в response
func FromDomainReservations(date string, list []*domain.Reservation) *ReservationListResponse {
	result := make([]ReservationResponse, 0, len(list))
	for _, r := range list {
		result = append(result, FromDomainReservation(r))
	}
	return &ReservationListResponse{
		Date:         date,
		Reservations: result,
		Total:        len(result),
	}
}
