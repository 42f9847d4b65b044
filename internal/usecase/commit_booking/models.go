package commit_booking

import "github.com/m04kA/SMC-TableReservation/internal/domain"

// Request модель запроса на сохранение черновика бронирования
type Request struct {
	Reservation *domain.Reservation // Неизменяемый черновик
}

// Response модель ответа с сохраненным бронированием
type Response struct {
	Reservation    *domain.Reservation // Сохраненная запись
	Booked         int                 // Количество бронирований на слот после сохранения
	AvailableSpots int                 // Оставшиеся места на слоте
}
