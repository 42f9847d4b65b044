// Package flow реализует конечный автомат одной сессии формы бронирования:
// выбор даты и слота, отправка, подтверждение и отмена.
package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/service/validation"
	"github.com/m04kA/SMC-TableReservation/internal/usecase/commit_booking"
	"github.com/m04kA/SMC-TableReservation/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

// Controller состояние одной сессии формы
// Все операции сериализуются мьютексом; запись в хранилище выполняется вне мьютекса под флагом inFlight
type Controller struct {
	mu sync.Mutex

	renderer     SlotsRenderer
	committer    BookingCommitter
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger

	state      domain.FlowState
	date       string
	selected   types.TimeString
	slots      *get_available_slots.Response
	validation domain.ValidationResult
	draft      *domain.Reservation
	summary    string
	notice     *domain.Notice
	inFlight   bool

	// Читается реестром сессий без захвата мьютекса контроллера
	lastActive atomic.Int64
}

// NewController создает контроллер в состоянии idle без выбранной даты
func NewController(
	renderer SlotsRenderer,
	committer BookingCommitter,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *Controller {
	c := &Controller{
		renderer:     renderer,
		committer:    committer,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
		state:        domain.FlowIdle,
	}
	c.touch()
	return c
}

// Start выбирает сегодняшнюю дату и отрисовывает слоты
func (c *Controller) Start(ctx context.Context) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()
	if err := c.render(ctx, c.today()); err != nil {
		return c.view(), err
	}
	return c.view(), nil
}

// SelectDate меняет дату; выбранное время сбрасывается
func (c *Controller) SelectDate(ctx context.Context, date string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()
	if c.inFlight {
		return c.view(), ErrCommitInProgress
	}

	if err := c.render(ctx, date); err != nil {
		return c.view(), err
	}
	return c.view(), nil
}

// SelectSlot выбирает время; в сессии выбрано не более одного слота
func (c *Controller) SelectSlot(startTime types.TimeString) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()
	if c.inFlight {
		return c.view(), ErrCommitInProgress
	}
	if c.slots == nil {
		return c.view(), ErrUnknownSlot
	}

	slot, ok := c.slots.Find(startTime)
	if !ok {
		return c.view(), fmt.Errorf("%w: %s", ErrUnknownSlot, startTime)
	}
	if slot.IsFull {
		return c.view(), fmt.Errorf("%w: %s %s", ErrSlotFull, c.date, startTime)
	}

	c.selected = startTime
	return c.view(), nil
}

// Submit проверяет форму и при успехе создает черновик и переходит в reviewing
// Провал валидации не является ошибкой: результат по правилам возвращается в View, состояние не меняется
func (c *Controller) Submit(form domain.BookingForm) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()
	if c.inFlight {
		return c.view(), ErrCommitInProgress
	}

	result := validation.Validate(validation.Input{
		Form:         form,
		Date:         c.date,
		SelectedTime: c.selected,
	})
	c.validation = result

	if !result.Valid() {
		if c.metrics != nil {
			for _, rule := range result.Failed() {
				c.metrics.RecordValidationFailure(string(rule))
			}
		}
		c.logger.Info("Flow: submit rejected, failed rules: %v", result.Failed())
		return c.view(), nil
	}

	draft := c.buildDraft(form)
	summary, err := renderSummary(draft)
	if err != nil {
		c.logger.Error("Flow: %v", err)
		return c.view(), fmt.Errorf("%w: %v", ErrInternal, err)
	}

	c.draft = draft
	c.summary = summary
	c.notice = nil
	c.state = domain.FlowReviewing
	return c.view(), nil
}

// Confirm сохраняет черновик
// Если слот заполнился, черновик отбрасывается и слоты перерисовываются;
// при сбое записи черновик остается для повторного подтверждения
func (c *Controller) Confirm(ctx context.Context) (View, error) {
	c.mu.Lock()
	c.touch()
	if c.inFlight {
		defer c.mu.Unlock()
		return c.view(), ErrCommitInProgress
	}
	if c.state != domain.FlowReviewing || c.draft == nil {
		defer c.mu.Unlock()
		return c.view(), ErrNotReviewing
	}
	c.inFlight = true
	draft := c.draft.Clone()
	c.mu.Unlock()

	resp, err := c.committer.Execute(ctx, &commit_booking.Request{Reservation: draft})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	c.touch()

	switch {
	case err == nil:
		c.notice = &domain.Notice{Kind: domain.NoticeSuccess, Message: successMessage(resp.Reservation)}
		// Запись уже сохранена, ошибка перерисовки только логируется
		_ = c.resetForm(ctx)
		c.state = domain.FlowCommitted
		return c.view(), nil

	case errors.Is(err, commit_booking.ErrSlotNotAvailable):
		c.draft = nil
		c.summary = ""
		c.state = domain.FlowIdle
		c.notice = &domain.Notice{Kind: domain.NoticeWarning, Message: slotNoLongerAvailableMessage}
		if renderErr := c.render(ctx, c.date); renderErr != nil {
			c.logger.Warn("Flow: failed to refresh slots after late conflict: %v", renderErr)
		}
		return c.view(), ErrSlotNoLongerAvailable

	case errors.Is(err, commit_booking.ErrDateNotBookable):
		c.notice = &domain.Notice{Kind: domain.NoticeWarning, Message: dateExpiredMessage}
		c.state = domain.FlowIdle
		// Черновик сбрасывается, форма возвращается на сегодня
		_ = c.resetForm(ctx)
		return c.view(), ErrDateExpired

	default:
		c.notice = &domain.Notice{Kind: domain.NoticeError, Message: commitFailedMessage}
		c.logger.Error("Flow: commit failed, draft kept for retry: %v", err)
		return c.view(), fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
}

// Cancel закрывает окно подтверждения без сохранения
func (c *Controller) Cancel() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()
	if c.inFlight {
		return c.view(), ErrCommitInProgress
	}
	if c.state != domain.FlowReviewing {
		return c.view(), ErrNotReviewing
	}

	c.draft = nil
	c.summary = ""
	c.state = domain.FlowIdle
	return c.view(), nil
}

// Reset очищает форму, черновик, выбор и уведомление и возвращает дату на сегодня
func (c *Controller) Reset(ctx context.Context) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()
	if c.inFlight {
		return c.view(), ErrCommitInProgress
	}

	c.notice = nil
	c.state = domain.FlowIdle
	if err := c.resetForm(ctx); err != nil {
		return c.view(), err
	}
	return c.view(), nil
}

// View возвращает снимок состояния
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()
	return c.view()
}

// Touch отмечает обращение к сессии
func (c *Controller) Touch() {
	c.touch()
}

// LastActive возвращает момент последнего обращения к сессии
func (c *Controller) LastActive() time.Time {
	return time.Unix(0, c.lastActive.Load())
}

// resetForm возвращает форму в начальное состояние; уведомление не трогает
func (c *Controller) resetForm(ctx context.Context) error {
	c.draft = nil
	c.summary = ""
	c.validation = nil
	c.selected = ""

	if err := c.render(ctx, c.today()); err != nil {
		c.logger.Warn("Flow: failed to refresh slots after reset: %v", err)
		return err
	}
	return nil
}

// render загружает слоты на дату; выбранное время при этом сбрасывается
func (c *Controller) render(ctx context.Context, date string) error {
	resp, err := c.renderer.Execute(ctx, &get_available_slots.Request{Date: date})
	if err != nil {
		if errors.Is(err, get_available_slots.ErrInvalidDate) || errors.Is(err, get_available_slots.ErrDateNotBookable) {
			return fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		return fmt.Errorf("%w: failed to render slots: %v", ErrInternal, err)
	}

	c.date = date
	c.slots = resp
	c.selected = ""
	return nil
}

func (c *Controller) buildDraft(form domain.BookingForm) *domain.Reservation {
	people, _ := validation.ParsePartySize(form.People)

	purposes := make([]domain.Purpose, 0, len(form.Purposes))
	for _, p := range form.Purposes {
		purposes = append(purposes, domain.Purpose(strings.TrimSpace(p)))
	}

	return &domain.Reservation{
		Name:      strings.TrimSpace(form.Name),
		Phone:     strings.TrimSpace(form.Phone),
		Email:     strings.TrimSpace(form.Email),
		People:    people,
		Date:      c.date,
		Time:      c.selected,
		Purpose:   purposes,
		Note:      strings.TrimSpace(form.Note),
		CreatedAt: c.timeProvider.Now().UTC(),
	}
}

func (c *Controller) view() View {
	v := View{
		State:        c.state,
		Date:         c.date,
		SelectedTime: c.selected,
		Draft:        c.draft.Clone(),
		Summary:      c.summary,
		InFlight:     c.inFlight,
	}
	if c.slots != nil {
		v.Slots = append(v.Slots, c.slots.Slots...)
	}
	if c.validation != nil {
		v.Validation = make(domain.ValidationResult, len(c.validation))
		for rule, ok := range c.validation {
			v.Validation[rule] = ok
		}
	}
	if c.notice != nil {
		notice := *c.notice
		v.Notice = &notice
	}
	return v
}

func (c *Controller) today() string {
	return c.timeProvider.Now().Format(domain.DateFormat)
}

func (c *Controller) touch() {
	c.lastActive.Store(c.timeProvider.Now().UnixNano())
}
