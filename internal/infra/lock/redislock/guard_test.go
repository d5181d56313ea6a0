package redislock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

// fakeRedis хранит ключи в памяти и исполняет release-скрипт как compare-and-delete
type fakeRedis struct {
	mu     sync.Mutex
	keys   map[string]string
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{keys: make(map[string]string)}
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, taken := f.keys[key]; taken {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) compareAndDelete(keys []string, args []interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[keys[0]] == args[0].(string) {
		delete(f.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) EvalRO(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) EvalShaRO(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeRedis) ScriptLoad(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func (f *fakeRedis) held(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.keys[key]
	return ok
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// contextTx как database/sql: commit с истекшим контекстом превращается в rollback
type contextTx struct {
	committed int32
}

func (tx *contextTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	atomic.StoreInt32(&tx.committed, 1)
	return nil
}

func testSlot() domain.Slot {
	return domain.NewSlot(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), types.TimeString("11:00"), domain.TourPremium)
}

func testOptions() Options {
	return Options{TTL: time.Second, WaitTimeout: time.Second, RetryDelay: time.Millisecond}
}

func TestGuard_ReleasesAfterRun(t *testing.T) {
	client := newFakeRedis()
	guard := NewGuard(client, passthroughTx{}, testOptions())
	key := keyPrefix + testSlot().Key()

	err := guard.Do(context.Background(), testSlot(), func(ctx context.Context) error {
		assert.True(t, client.held(key))
		return nil
	})

	require.NoError(t, err)
	assert.False(t, client.held(key))
}

func TestGuard_ReleasesOnError(t *testing.T) {
	client := newFakeRedis()
	guard := NewGuard(client, passthroughTx{}, testOptions())

	err := guard.Do(context.Background(), testSlot(), func(ctx context.Context) error {
		return domain.ErrCapacityExceeded
	})

	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.False(t, client.held(keyPrefix+testSlot().Key()))
}

func TestGuard_SerializesSameSlot(t *testing.T) {
	client := newFakeRedis()
	guard := NewGuard(client, passthroughTx{}, testOptions())

	var (
		inside  int32
		overlap int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := guard.Do(context.Background(), testSlot(), func(ctx context.Context) error {
				if atomic.AddInt32(&inside, 1) > 1 {
					atomic.StoreInt32(&overlap, 1)
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&overlap))
}

func TestGuard_WaitTimeout(t *testing.T) {
	client := newFakeRedis()
	client.keys[keyPrefix+testSlot().Key()] = "someone-else"
	guard := NewGuard(client, passthroughTx{}, Options{TTL: time.Second, WaitTimeout: 10 * time.Millisecond, RetryDelay: time.Millisecond})

	err := guard.Do(context.Background(), testSlot(), func(ctx context.Context) error {
		t.Fatal("must not run without the lock")
		return nil
	})

	assert.ErrorIs(t, err, ErrLockTimeout)
	// Чужой ключ не трогаем
	assert.True(t, client.held(keyPrefix+testSlot().Key()))
}

func TestGuard_RedisError(t *testing.T) {
	client := newFakeRedis()
	client.setErr = errors.New("connection refused")
	guard := NewGuard(client, passthroughTx{}, testOptions())

	err := guard.Do(context.Background(), testSlot(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrAcquireLock)
}

func TestGuard_TransactionOutlivesLock(t *testing.T) {
	client := newFakeRedis()
	tx := &contextTx{}
	guard := NewGuard(client, tx, Options{TTL: 50 * time.Millisecond, WaitTimeout: time.Second, RetryDelay: time.Millisecond})

	err := guard.Do(context.Background(), testSlot(), func(ctx context.Context) error {
		// Медленный запрос, который не смотрит на контекст
		time.Sleep(80 * time.Millisecond)
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLockExpired)
	assert.Equal(t, int32(0), atomic.LoadInt32(&tx.committed))
	assert.False(t, client.held(keyPrefix+testSlot().Key()))
}

func TestGuard_DeadlineBeforeKeyExpiry(t *testing.T) {
	client := newFakeRedis()
	tx := &contextTx{}
	guard := NewGuard(client, tx, Options{TTL: 10 * time.Second, WaitTimeout: time.Second, RetryDelay: time.Millisecond})

	start := time.Now()
	err := guard.Do(context.Background(), testSlot(), func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.True(t, deadline.Before(start.Add(10*time.Second)))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tx.committed))
}

func TestGuard_CallerCancellationNotReportedAsExpiry(t *testing.T) {
	client := newFakeRedis()
	guard := NewGuard(client, &contextTx{}, testOptions())
	ctx, cancel := context.WithCancel(context.Background())

	err := guard.Do(ctx, testSlot(), func(ctx context.Context) error {
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrLockExpired)
}
