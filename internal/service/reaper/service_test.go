package reaper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

type fakeHoldRepo struct {
	mu      sync.Mutex
	calls   []time.Time
	deleted int64
	err     error
}

func (f *fakeHoldRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return f.deleted, f.err
}

func (f *fakeHoldRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeMetrics struct {
	mu     sync.Mutex
	events map[string]int
}

func (m *fakeMetrics) Record(event string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.events == nil {
		m.events = make(map[string]int)
	}
	m.events[event] += n
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestReapExpired(t *testing.T) {
	repo := &fakeHoldRepo{deleted: 4}
	m := &fakeMetrics{}
	svc := NewService(repo, m, nopLogger{})
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	deleted, err := svc.ReapExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.Equal(t, []time.Time{now}, repo.calls)
	assert.Equal(t, 4, m.events[EventHoldsReaped])
}

func TestReapExpired_DependencyError(t *testing.T) {
	svc := NewService(&fakeHoldRepo{err: errors.New("connection reset")}, &fakeMetrics{}, nopLogger{})

	_, err := svc.ReapExpired(context.Background(), time.Now())

	assert.ErrorIs(t, err, domain.ErrDependency)
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	repo := &fakeHoldRepo{}
	svc := NewService(repo, &fakeMetrics{}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx, time.Millisecond) }()

	require.Eventually(t, func() bool { return repo.callCount() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop")
	}
}
