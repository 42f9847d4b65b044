package kvstore

import (
	"context"
	"sync"
)

// MemoryStore хранилище в памяти процесса
// Update выполняется под мьютексом, поэтому атомарен относительно других операций
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore создает пустое хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get возвращает значение ключа
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]
	return value, ok, nil
}

// Set записывает значение ключа
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Update атомарно читает и перезаписывает значение ключа
func (s *MemoryStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	current, exists := s.data[key]
	next, err := fn(current, exists)
	if err != nil {
		return err
	}
	s.data[key] = next
	return nil
}
