package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableReservation/internal/service/flow"
	"github.com/m04kA/SMC-TableReservation/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type gaugeMetrics struct{ active int }

func (m *gaugeMetrics) SetActiveSessions(n int) { m.active = n }

type stubRenderer struct{ err error }

func (r stubRenderer) Execute(_ context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &get_available_slots.Response{
		Date:  req.Date,
		Slots: []get_available_slots.Slot{{StartTime: "10:00", Label: "10:00", AvailableSpots: 3, TotalSpots: 3}},
	}, nil
}

func newService(clock *manualClock, cfg Config, renderer flow.SlotsRenderer) (*Service, *gaugeMetrics) {
	m := &gaugeMetrics{}
	factory := func() *flow.Controller {
		return flow.NewController(renderer, nil, clock, nil, nopLogger{})
	}
	return NewService(factory, cfg, clock, m, nopLogger{}), m
}

func TestCreateAndGet(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	svc, m := newService(clock, Config{TTL: time.Hour}, stubRenderer{})

	id, view, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, "2026-10-19", view.Date)
	assert.Equal(t, 1, m.active)

	controller, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", controller.View().Date)

	other, _, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
	assert.Equal(t, 2, svc.Count())
}

func TestGetUnknownSession(t *testing.T) {
	clock := &manualClock{now: time.Now()}
	svc, _ := newService(clock, Config{}, stubRenderer{})

	_, err := svc.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Get("0b7b1d6e-5c7f-4d8e-9a57-6f1b2c3d4e5f")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExpiredSessionsAreEvicted(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	svc, m := newService(clock, Config{TTL: 30 * time.Minute}, stubRenderer{})

	stale, _, err := svc.Create(context.Background())
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	fresh, _, err := svc.Create(context.Background())
	require.NoError(t, err)

	// Обращение продлевает жизнь сессии
	clock.Advance(5 * time.Minute)
	_, err = svc.Get(fresh)
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	_, err = svc.Get(stale)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, m.active)

	_, err = svc.Get(fresh)
	assert.NoError(t, err)
}

func TestMaxSessions(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	svc, _ := newService(clock, Config{TTL: time.Minute, MaxSessions: 2}, stubRenderer{})

	for i := 0; i < 2; i++ {
		_, _, err := svc.Create(context.Background())
		require.NoError(t, err)
	}

	_, _, err := svc.Create(context.Background())
	assert.ErrorIs(t, err, ErrTooManySessions)

	// После истечения TTL место освобождается
	clock.Advance(2 * time.Minute)
	_, _, err = svc.Create(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, svc.Count())
}

func TestCreateFailsWhenRenderFails(t *testing.T) {
	clock := &manualClock{now: time.Now()}
	svc, _ := newService(clock, Config{}, stubRenderer{err: errors.New("storage down")})

	_, _, err := svc.Create(context.Background())
	assert.ErrorIs(t, err, flow.ErrInternal)
	assert.Equal(t, 0, svc.Count())
}
