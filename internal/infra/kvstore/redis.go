package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RedisStore хранилище на Redis
// Update использует оптимистичную блокировку WATCH/MULTI/EXEC: если ключ изменился
// между чтением и записью, EXEC отклоняется и возвращается ErrConflict (без повторов)
type RedisStore struct {
	client redis.UniversalClient
	tracer trace.Tracer
}

// NewRedisStore создает хранилище поверх клиента Redis
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		tracer: otel.Tracer("reservation.infra.kvstore.redis"),
	}
}

// Get возвращает значение ключа
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := s.tracer.Start(ctx, "kvstore.redis.get", trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		span.RecordError(err)
		return "", false, fmt.Errorf("%w: get %s: %v", ErrStorage, key, err)
	}
	return value, true, nil
}

// Set записывает значение ключа без срока жизни
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	ctx, span := s.tracer.Start(ctx, "kvstore.redis.set", trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: set %s: %v", ErrStorage, key, err)
	}
	return nil
}

// Update атомарно читает и перезаписывает значение ключа
func (s *RedisStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	ctx, span := s.tracer.Start(ctx, "kvstore.redis.update", trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	var fnErr error
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		exists := true
		if errors.Is(err, redis.Nil) {
			current, exists = "", false
		} else if err != nil {
			return err
		}

		next, err := fn(current, exists)
		if err != nil {
			fnErr = err
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, key)
	switch {
	case err == nil:
		return nil
	case fnErr != nil:
		// Ошибка бизнес-логики возвращается без обертки
		return fnErr
	case errors.Is(err, redis.TxFailedErr):
		span.RecordError(err)
		return fmt.Errorf("%w: update %s", ErrConflict, key)
	default:
		span.RecordError(err)
		return fmt.Errorf("%w: update %s: %v", ErrStorage, key, err)
	}
}
