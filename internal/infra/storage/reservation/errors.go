package reservation

import "errors"

var (
	// ErrLoad возвращается, когда хранилище недоступно при чтении
	ErrLoad = errors.New("reservation.repository: failed to load reservations")

	// ErrSave возвращается, когда не удалось записать список бронирований
	ErrSave = errors.New("reservation.repository: failed to save reservations")

	// ErrEncode возвращается при ошибке сериализации списка
	ErrEncode = errors.New("reservation.repository: failed to encode reservations")
)
