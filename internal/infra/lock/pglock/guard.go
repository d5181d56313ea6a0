// Package pglock сериализует операции над одним слотом через
// транзакционный advisory lock PostgreSQL
package pglock

import (
	"context"
	"fmt"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/pkg/dbmetrics"
)

const lockQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`

// Guard выполняет функцию в транзакции, удерживая блокировку слота до commit/rollback
type Guard struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewGuard создает guard на базе advisory lock
func NewGuard(db DBExecutor, txManager TransactionManager) *Guard {
	return &Guard{db: db, txManager: txManager}
}

// Do открывает транзакцию, берет блокировку слота и выполняет fn.
// Блокировка снимается PostgreSQL вместе с завершением транзакции.
func (g *Guard) Do(ctx context.Context, slot domain.Slot, fn func(ctx context.Context) error) error {
	return g.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, g.db)
		if _, err := executor.ExecContext(txCtx, lockQuery, slot.Key()); err != nil {
			return fmt.Errorf("%w: Do - slot %s: %v", ErrAcquireLock, slot.Key(), err)
		}
		return fn(txCtx)
	})
}
