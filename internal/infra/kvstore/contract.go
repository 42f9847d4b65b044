package kvstore

import (
	"context"

	"github.com/m04kA/SMC-TableReservation/pkg/txmanager"
)

// UpdateFunc получает текущее значение ключа (exists=false, если ключа нет)
// и возвращает новое значение. Ошибка из UpdateFunc прерывает запись и возвращается как есть.
type UpdateFunc func(current string, exists bool) (string, error)

// DBExecutor интерфейс для выполнения запросов (*sql.DB или транзакция)
type DBExecutor = txmanager.DBExecutor

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
