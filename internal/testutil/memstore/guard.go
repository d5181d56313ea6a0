package memstore

import (
	"context"
	"sync"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// SlotGuard взаимное исключение по ключу слота в пределах процесса
type SlotGuard struct {
	locks sync.Map // slot key -> *sync.Mutex
}

// Do выполняет fn, удерживая мьютекс слота
func (g *SlotGuard) Do(ctx context.Context, slot domain.Slot, fn func(ctx context.Context) error) error {
	value, _ := g.locks.LoadOrStore(slot.Key(), &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()
	return fn(ctx)
}

// TxManager выполняет fn без транзакции
type TxManager struct{}

// Do выполняет fn
func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
