package flow

import "errors"

var (
	// ErrInvalidDate возвращается, когда дата некорректна или вне окна бронирования
	ErrInvalidDate = errors.New("flow.controller: date is not bookable")

	// ErrUnknownSlot возвращается при выборе времени, которого нет в каталоге
	ErrUnknownSlot = errors.New("flow.controller: unknown time slot")

	// ErrSlotFull возвращается при выборе заполненного слота
	ErrSlotFull = errors.New("flow.controller: time slot is full")

	// ErrNotReviewing возвращается при подтверждении или отмене без черновика
	ErrNotReviewing = errors.New("flow.controller: no booking under review")

	// ErrCommitInProgress возвращается, пока предыдущее подтверждение не завершилось
	ErrCommitInProgress = errors.New("flow.controller: commit already in progress")

	// ErrSlotNoLongerAvailable возвращается, когда слот заполнился до подтверждения
	ErrSlotNoLongerAvailable = errors.New("flow.controller: slot is no longer available")

	// ErrDateExpired возвращается, когда дата черновика вышла из окна бронирования до подтверждения
	ErrDateExpired = errors.New("flow.controller: booking date is no longer bookable")

	// ErrCommitFailed возвращается, когда запись не удалась; черновик сохранен для повтора
	ErrCommitFailed = errors.New("flow.controller: failed to save booking")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("flow.controller: internal error")
)
