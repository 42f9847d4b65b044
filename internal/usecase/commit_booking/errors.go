package commit_booking

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда слот заполнился, пока посетитель проверял данные
	ErrSlotNotAvailable = errors.New("commit_booking: slot is no longer available")

	// ErrDateNotBookable возвращается, когда дата вышла из окна бронирования (например, сессия пережила полночь)
	ErrDateNotBookable = errors.New("commit_booking: date is outside the booking window")

	// ErrInvalidTimeSlot возвращается, когда время не входит в каталог слотов
	ErrInvalidTimeSlot = errors.New("commit_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_booking: invalid input data")

	// ErrConflict возвращается, когда параллельная запись изменила список во время сохранения
	ErrConflict = errors.New("commit_booking: concurrent modification, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_booking: internal error")
)
