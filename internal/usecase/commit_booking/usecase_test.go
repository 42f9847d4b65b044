package commit_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/infra/kvstore"
	"github.com/m04kA/SMC-TableReservation/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TableReservation/pkg/metrics"
	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordingMetrics) RecordCommit(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

type failingRepo struct{ err error }

func (f failingRepo) CreateIf(context.Context, *domain.Reservation, reservation.CheckFunc) error {
	return f.err
}

func draft(name string, at types.TimeString) *domain.Reservation {
	return &domain.Reservation{
		Name:      name,
		Phone:     "0912345678",
		Email:     "guest@example.com",
		People:    2,
		Date:      "2026-10-20",
		Time:      at,
		Purpose:   []domain.Purpose{domain.PurposeFamily},
		CreatedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}
}

func setup() (*UseCase, *reservation.Repository, *recordingMetrics) {
	repo := reservation.NewRepository(kvstore.NewMemoryStore(), domain.ReservationsKey, nopLogger{})
	m := &recordingMetrics{}
	return NewUseCase(repo, domain.DefaultSlotsConfig(), fixedTime{now: now}, m, nopLogger{}), repo, m
}

func TestExecuteAppendsUntilCapacity(t *testing.T) {
	uc, repo, m := setup()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		resp, err := uc.Execute(ctx, &Request{Reservation: draft(fmt.Sprintf("guest-%d", i), "18:00")})
		require.NoError(t, err)
		assert.Equal(t, i, resp.Booked)
		assert.Equal(t, 3-i, resp.AvailableSpots)
	}

	_, err := uc.Execute(ctx, &Request{Reservation: draft("late", "18:00")})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Другой слот той же даты не затронут
	_, err = uc.Execute(ctx, &Request{Reservation: draft("other", "18:30")})
	require.NoError(t, err)

	assert.Equal(t, []string{
		metrics.CommitCommitted,
		metrics.CommitCommitted,
		metrics.CommitCommitted,
		metrics.CommitSlotFull,
		metrics.CommitCommitted,
	}, m.outcomes)
}

func TestExecuteRaceForLastSpot(t *testing.T) {
	uc, repo, _ := setup()
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{Reservation: draft("a", "12:00")})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, &Request{Reservation: draft("b", "12:00")})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Execute(ctx, &Request{Reservation: draft(fmt.Sprintf("racer-%d", i), "12:00")})
		}(i)
	}
	wg.Wait()

	committed := 0
	for _, err := range results {
		if err == nil {
			committed++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	}
	assert.Equal(t, 1, committed)

	byDate, err := repo.GetByDate(ctx, "2026-10-20")
	require.NoError(t, err)
	assert.Len(t, byDate, 3)
}

func TestExecuteDoesNotShareDraft(t *testing.T) {
	uc, _, _ := setup()
	d := draft("ann", "10:00")

	resp, err := uc.Execute(context.Background(), &Request{Reservation: d})
	require.NoError(t, err)

	resp.Reservation.Purpose[0] = domain.PurposeOther
	assert.Equal(t, domain.PurposeFamily, d.Purpose[0])
}

func TestExecuteRejectsInvalidInput(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := draft("ann", "10:00")
	bad.Date = "tomorrow"
	_, err = uc.Execute(ctx, &Request{Reservation: bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = draft("ann", "7:5")
	_, err = uc.Execute(ctx, &Request{Reservation: bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = draft("ann", "10:00")
	bad.People = 0
	_, err = uc.Execute(ctx, &Request{Reservation: bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Reservation: draft("ann", "10:15")})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = uc.Execute(ctx, &Request{Reservation: draft("ann", "20:30")})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecuteStorageErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{
			name:    "conflict",
			repoErr: fmt.Errorf("%w: CreateIf: %w", reservation.ErrSave, kvstore.ErrConflict),
			wantErr: ErrConflict,
		},
		{
			name:    "storage down",
			repoErr: fmt.Errorf("%w: CreateIf: %v", reservation.ErrSave, errors.New("connection refused")),
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &recordingMetrics{}
			uc := NewUseCase(failingRepo{err: tt.repoErr}, domain.DefaultSlotsConfig(), fixedTime{now: now}, m, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{Reservation: draft("ann", "10:00")})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{metrics.CommitFailed}, m.outcomes)
		})
	}
}

func TestExecuteRejectsDateOutsideWindow(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{name: "today", date: "2026-10-19"},
		{name: "last day of window", date: "2026-10-25"},
		{name: "yesterday", date: "2026-10-18", wantErr: ErrDateNotBookable},
		{name: "after window", date: "2026-10-26", wantErr: ErrDateNotBookable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, m := setup()
			d := draft("ann", "12:00")
			d.Date = tt.date

			_, err := uc.Execute(context.Background(), &Request{Reservation: d})
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, m.outcomes)

			all, err := repo.GetAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}
