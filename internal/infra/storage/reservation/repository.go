package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

// CheckFunc проверяет текущий список бронирований перед добавлением нового
// Возврат ошибки отменяет запись
type CheckFunc func(existing []*domain.Reservation) error

// Repository хранит упорядоченный список бронирований под одним ключом в JSON
// Отсутствующий ключ или неразборчивый массив трактуются как пустой список
type Repository struct {
	store  Store
	key    string
	logger Logger
}

// NewRepository создает репозиторий бронирований
func NewRepository(store Store, key string, logger Logger) *Repository {
	return &Repository{
		store:  store,
		key:    key,
		logger: logger,
	}
}

// GetAll возвращает все бронирования в порядке сохранения
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Reservation, error) {
	raw, exists, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll: %v", ErrLoad, err)
	}
	if !exists {
		return []*domain.Reservation{}, nil
	}
	return r.decode(raw), nil
}

// GetByDate возвращает бронирования на дату, отсортированные по времени и моменту создания
func (r *Repository) GetByDate(ctx context.Context, date string) ([]*domain.Reservation, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Reservation, 0)
	for _, res := range all {
		if res.Date == date {
			result = append(result, res)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Time != result[j].Time {
			return result[i].Time.IsBefore(result[j].Time)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Create добавляет бронирование в конец списка без проверок
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.CreateIf(ctx, res, nil)
}

// CreateIf атомарно читает список, вызывает check и, если он не вернул ошибку,
// добавляет бронирование в конец списка. Чтение, проверка и запись выполняются
// одной операцией хранилища, поэтому параллельная запись не может проскочить между ними.
// Записи, которые не удалось разобрать, переписываются байт в байт.
func (r *Repository) CreateIf(ctx context.Context, res *domain.Reservation, check CheckFunc) error {
	var checkErr error

	err := r.store.Update(ctx, r.key, func(current string, exists bool) (string, error) {
		var entries []storedEntry
		if exists {
			entries = r.decodeEntries(current)
		}

		if check != nil {
			if err := check(reservationsOf(entries)); err != nil {
				checkErr = err
				return "", err
			}
		}

		encoded, err := json.Marshal(res)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEncode, err)
		}

		list := make([]json.RawMessage, 0, len(entries)+1)
		for _, e := range entries {
			list = append(list, e.raw)
		}
		list = append(list, encoded)

		data, err := json.Marshal(list)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return string(data), nil
	})

	switch {
	case err == nil:
		return nil
	case checkErr != nil && errors.Is(err, checkErr):
		return err
	default:
		// kvstore.ErrConflict остается доступен через errors.Is
		return fmt.Errorf("%w: CreateIf: %w", ErrSave, err)
	}
}

// storedEntry запись списка: исходные байты и разобранное бронирование (nil, если разобрать нельзя)
type storedEntry struct {
	raw json.RawMessage
	res *domain.Reservation
}

// slotOnly минимальный разбор записи с нестандартными полями, чтобы она занимала место в слоте
type slotOnly struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (r *Repository) decode(raw string) []*domain.Reservation {
	return reservationsOf(r.decodeEntries(raw))
}

// decodeEntries разбирает каждую запись отдельно
// Пустой список возвращается только если не разбирается сам массив
func (r *Repository) decodeEntries(raw string) []storedEntry {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.logger.Warn("reservation.repository: stored data under key=%s is malformed, treating as empty: %v", r.key, err)
		return nil
	}

	entries := make([]storedEntry, 0, len(items))
	for i, item := range items {
		if len(item) == 0 || string(item) == "null" {
			continue
		}
		entries = append(entries, storedEntry{raw: item, res: r.decodeRecord(i, item)})
	}
	return entries
}

func (r *Repository) decodeRecord(index int, item json.RawMessage) *domain.Reservation {
	var res domain.Reservation
	err := json.Unmarshal(item, &res)
	if err == nil {
		return &res
	}

	var slot slotOnly
	if slotErr := json.Unmarshal(item, &slot); slotErr != nil || slot.Date == "" || slot.Time == "" {
		r.logger.Warn("reservation.repository: record %d under key=%s is unreadable, kept as is: %v", index, r.key, err)
		return nil
	}

	r.logger.Warn("reservation.repository: record %d under key=%s has unexpected fields, counted by slot only: %v", index, r.key, err)
	return &domain.Reservation{Date: slot.Date, Time: types.TimeString(slot.Time)}
}

func reservationsOf(entries []storedEntry) []*domain.Reservation {
	result := make([]*domain.Reservation, 0, len(entries))
	for _, e := range entries {
		if e.res != nil {
			result = append(result, e.res)
		}
	}
	return result
}
