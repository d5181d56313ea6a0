// Package redislock сериализует операции над одним слотом через
// блокировку в Redis (SET NX PX + удаление по токену)
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

const keyPrefix = "inselbahn:slot:"

// Доля TTL, оставляемая на commit/rollback и расхождение часов с Redis
const ttlMarginRatio = 5

// Удаляем ключ только если он все еще наш
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Options параметры блокировки
type Options struct {
	TTL         time.Duration // время жизни ключа, защищает от зависших владельцев
	WaitTimeout time.Duration // сколько ждать освобождения занятого слота
	RetryDelay  time.Duration // пауза между попытками
}

// Guard держит блокировку слота в Redis на время транзакции
type Guard struct {
	client    Client
	txManager TransactionManager
	opts      Options
}

// NewGuard создает guard на базе Redis
func NewGuard(client Client, txManager TransactionManager, opts Options) *Guard {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 25 * time.Millisecond
	}
	return &Guard{client: client, txManager: txManager, opts: opts}
}

// Do берет блокировку слота, выполняет fn в транзакции и освобождает блокировку.
// Транзакция ограничена дедлайном раньше истечения ключа и по нему откатывается.
func (g *Guard) Do(ctx context.Context, slot domain.Slot, fn func(ctx context.Context) error) error {
	key := keyPrefix + slot.Key()
	token := uuid.NewString()

	acquiredAt, err := g.acquire(ctx, key, token)
	if err != nil {
		return err
	}
	defer g.release(key, token)

	txCtx, cancel := context.WithDeadline(ctx, acquiredAt.Add(g.leaseBudget()))
	defer cancel()

	err = g.txManager.Do(txCtx, fn)
	if err != nil && errors.Is(txCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("%w: key %s: %v", ErrLockExpired, key, err)
	}
	return err
}

// leaseBudget время, за которое транзакция обязана завершиться
func (g *Guard) leaseBudget() time.Duration {
	return g.opts.TTL - g.opts.TTL/ttlMarginRatio
}

// acquire возвращает момент отправки успешного SET NX: ключ живет TTL не дольше этого момента
func (g *Guard) acquire(ctx context.Context, key, token string) (time.Time, error) {
	deadline := time.Now().Add(g.opts.WaitTimeout)

	for {
		attemptAt := time.Now()
		ok, err := g.client.SetNX(ctx, key, token, g.opts.TTL).Result()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: acquire - key %s: %v", ErrAcquireLock, key, err)
		}
		if ok {
			return attemptAt, nil
		}
		if !time.Now().Before(deadline) {
			return time.Time{}, fmt.Errorf("%w: key %s", ErrLockTimeout, key)
		}

		timer := time.NewTimer(g.opts.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return time.Time{}, fmt.Errorf("%w: acquire - key %s: %v", ErrAcquireLock, key, ctx.Err())
		case <-timer.C:
		}
	}
}

func (g *Guard) release(key, token string) {
	// Контекст запроса мог быть отменен, ключ все равно нужно снять
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = releaseScript.Run(ctx, g.client, []string{key}, token).Err()
}
