package preferences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableReservation/internal/infra/kvstore"
)

func TestDarkModeFlag(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewRepository(store, "darkMode")

	enabled, err := repo.GetDarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, enabled, "absent key means light mode")

	enabled, err = repo.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	raw, _, _ := store.Get(ctx, "darkMode")
	assert.Equal(t, "true", raw)

	enabled, err = repo.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, repo.SetDarkMode(ctx, true))
	enabled, err = repo.GetDarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestDarkModeUnexpectedValue(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "darkMode", "yes"))
	repo := NewRepository(store, "darkMode")

	enabled, err := repo.GetDarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
}
