package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TableReservation/internal/infra/kvstore"
)

var (
	// ErrLoad возвращается, когда не удалось прочитать настройку
	ErrLoad = errors.New("preferences.repository: failed to load preference")

	// ErrSave возвращается, когда не удалось записать настройку
	ErrSave = errors.New("preferences.repository: failed to save preference")
)

// Store хранилище ключ-значение
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Update(ctx context.Context, key string, fn kvstore.UpdateFunc) error
}

// Repository хранит флаг темной темы строкой "true"/"false"
type Repository struct {
	store Store
	key   string
}

// NewRepository создает репозиторий настроек
func NewRepository(store Store, key string) *Repository {
	return &Repository{
		store: store,
		key:   key,
	}
}

// GetDarkMode возвращает флаг темной темы; отсутствие ключа означает светлую тему
func (r *Repository) GetDarkMode(ctx context.Context) (bool, error) {
	raw, exists, err := r.store.Get(ctx, r.key)
	if err != nil {
		return false, fmt.Errorf("%w: GetDarkMode: %v", ErrLoad, err)
	}
	if !exists {
		return false, nil
	}
	return parseFlag(raw), nil
}

// SetDarkMode записывает флаг темной темы
func (r *Repository) SetDarkMode(ctx context.Context, enabled bool) error {
	if err := r.store.Set(ctx, r.key, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("%w: SetDarkMode: %v", ErrSave, err)
	}
	return nil
}

// ToggleDarkMode атомарно инвертирует флаг и возвращает новое значение
func (r *Repository) ToggleDarkMode(ctx context.Context) (bool, error) {
	var enabled bool
	err := r.store.Update(ctx, r.key, func(current string, exists bool) (string, error) {
		enabled = !(exists && parseFlag(current))
		return strconv.FormatBool(enabled), nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: ToggleDarkMode: %v", ErrSave, err)
	}
	return enabled, nil
}

// parseFlag повторяет правило виджета: темная тема включена только при значении "true"
func parseFlag(raw string) bool {
	return raw == "true"
}
