package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateNotBookable возвращается, когда дата вне окна бронирования
	ErrDateNotBookable = errors.New("get_available_slots: date is outside the booking window")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
