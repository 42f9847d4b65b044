package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TableReservation/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TableReservation/pkg/txmanager"
)

const (
	tableName   = "kv_store"
	columnKey   = "store_key"
	columnValue = "store_value"
)

// SQLSTATE кодов, при которых транзакция проиграла параллельной записи
const (
	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
)

const createTableQuery = `CREATE TABLE IF NOT EXISTS kv_store (
	store_key   TEXT PRIMARY KEY,
	store_value TEXT NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore хранилище ключ-значение в таблице PostgreSQL
// Update выполняется в SERIALIZABLE транзакции с SELECT ... FOR UPDATE
type PostgresStore struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewPostgresStore создает хранилище поверх БД
func NewPostgresStore(db DBExecutor, txManager TransactionManager) *PostgresStore {
	return &PostgresStore{
		db:        db,
		txManager: txManager,
	}
}

// EnsureSchema создает таблицу хранилища, если ее нет
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("%w: EnsureSchema - create table: %v", ErrStorage, err)
	}
	return nil
}

// Get возвращает значение ключа
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.get(ctx, key, false)
}

// Set записывает значение ключа (upsert)
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	return s.upsert(ctx, key, value)
}

// Update атомарно читает и перезаписывает значение ключа
func (s *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, exists, err := s.get(txCtx, key, true)
		if err != nil {
			return err
		}

		next, err := fn(current, exists)
		if err != nil {
			return err
		}

		return s.upsert(txCtx, key, next)
	})

	if isSerializationFailure(err) {
		return fmt.Errorf("%w: update %s", ErrConflict, key)
	}
	if errors.Is(err, txmanager.ErrTransaction) {
		return fmt.Errorf("%w: update %s: %v", ErrStorage, key, err)
	}
	return err
}

func (s *PostgresStore) get(ctx context.Context, key string, forUpdate bool) (string, bool, error) {
	executor := txmanager.GetExecutor(ctx, s.db)

	selectBuilder := psqlbuilder.Select(columnValue).
		From(tableName).
		Where(squirrel.Eq{columnKey: key})

	// Внутри транзакции блокируем строку до конца транзакции
	if forUpdate && txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: get - build select query: %v", ErrStorage, err)
	}

	var value string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		if isSerializationFailure(err) {
			return "", false, err
		}
		return "", false, fmt.Errorf("%w: get - scan value: %v", ErrStorage, err)
	}
	return value, true, nil
}

func (s *PostgresStore) upsert(ctx context.Context, key, value string) error {
	executor := txmanager.GetExecutor(ctx, s.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(columnKey, columnValue, "updated_at").
		Values(key, value, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (store_key) DO UPDATE SET store_value = EXCLUDED.store_value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: upsert - build insert query: %v", ErrStorage, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: upsert - execute insert: %v", ErrStorage, err)
	}
	return nil
}

// isSerializationFailure распознает проигрыш параллельной транзакции
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
