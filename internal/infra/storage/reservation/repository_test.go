package reservation_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/internal/infra/kvstore"
	"github.com/m04kA/SMC-TableReservation/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-TableReservation/pkg/logger"
)

const key = "restaurant_bookings_v1"

func TestRepositoryEmptyAndCorruptData(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := reservation.NewRepository(store, key, logger.NewWithWriter(io.Discard, "error"))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, store.Set(ctx, key, "{not json"))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, store.Set(ctx, key, "null"))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepositoryCreateAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := reservation.NewRepository(store, key, logger.NewWithWriter(io.Discard, "error"))
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &domain.Reservation{Name: "first", Date: "2026-10-20", Time: "12:00", People: 2, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.Reservation{Name: "second", Date: "2026-10-20", Time: "10:00", People: 3, CreatedAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &domain.Reservation{Name: "other day", Date: "2026-10-21", Time: "10:00", People: 1, CreatedAt: now}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Name)
	assert.Equal(t, "second", all[1].Name)

	byDate, err := repo.GetByDate(ctx, "2026-10-20")
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "second", byDate[0].Name)
	assert.Equal(t, "first", byDate[1].Name)
}

func TestRepositoryCreateIf(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := reservation.NewRepository(store, key, logger.NewWithWriter(io.Discard, "error"))

	full := errors.New("slot is full")
	check := func(existing []*domain.Reservation) error {
		if len(existing) >= 2 {
			return full
		}
		return nil
	}

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.CreateIf(ctx, &domain.Reservation{Name: "guest", Date: "2026-10-20", Time: "10:30"}, check))
	}

	err := repo.CreateIf(ctx, &domain.Reservation{Name: "late", Date: "2026-10-20", Time: "10:30"}, check)
	require.ErrorIs(t, err, full)
	assert.NotErrorIs(t, err, reservation.ErrSave)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepositoryCreateOverCorruptData(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := reservation.NewRepository(store, key, logger.NewWithWriter(io.Discard, "error"))
	require.NoError(t, store.Set(ctx, key, "garbage"))

	require.NoError(t, repo.Create(ctx, &domain.Reservation{Name: "Ann", Date: "2026-10-20", Time: "10:30", People: 2}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ann", all[0].Name)
}

func TestRepositoryKeepsRecordsWithUnexpectedFields(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := reservation.NewRepository(store, key, logger.NewWithWriter(io.Discard, "error"))

	stored := `[
		{"name":"Ann","people":2,"date":"2026-10-20","time":"10:30"},
		{"name":"Bob","people":"","date":"2026-10-20","time":"10:30"},
		{"name":"Eve","people":true,"date":"2026-10-20","time":"10:30"},
		"junk"
	]`
	require.NoError(t, store.Set(ctx, key, stored))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ann", all[0].Name)
	assert.Equal(t, "Bob", all[1].Name)
	assert.Equal(t, domain.PartySize(0), all[1].People)
	assert.Equal(t, "2026-10-20", all[2].Date)
	assert.Equal(t, "10:30", all[2].Time.String())

	// Все три записи занимают слот
	full := errors.New("slot is full")
	err = repo.CreateIf(ctx, &domain.Reservation{Name: "late", Date: "2026-10-20", Time: "10:30"}, func(existing []*domain.Reservation) error {
		if len(existing) >= 3 {
			return full
		}
		return nil
	})
	require.ErrorIs(t, err, full)

	// Добавление не теряет ни одной записи, включая нечитаемые
	require.NoError(t, repo.Create(ctx, &domain.Reservation{Name: "Zoe", Date: "2026-10-21", Time: "12:00", People: 2}))

	raw, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 5)
	assert.JSONEq(t, `{"name":"Eve","people":true,"date":"2026-10-20","time":"10:30"}`, string(items[2]))
	assert.JSONEq(t, `"junk"`, string(items[3]))

	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Zoe", all[3].Name)
}

type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, s.err
}

func (s failingStore) Update(context.Context, string, kvstore.UpdateFunc) error {
	return s.err
}

func TestRepositoryStorageErrors(t *testing.T) {
	ctx := context.Background()
	repo := reservation.NewRepository(failingStore{err: kvstore.ErrConflict}, key, logger.NewWithWriter(io.Discard, "error"))

	_, err := repo.GetAll(ctx)
	require.ErrorIs(t, err, reservation.ErrLoad)

	err = repo.Create(ctx, &domain.Reservation{Name: "Ann"})
	require.ErrorIs(t, err, reservation.ErrSave)
	require.ErrorIs(t, err, kvstore.ErrConflict)
}
