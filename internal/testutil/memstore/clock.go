package memstore

import (
	"sync"
	"time"
)

// Clock управляемые часы
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock часы, остановленные на now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now текущее время часов
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance сдвигает часы вперед
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set переставляет часы
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Logger логгер, который ничего не пишет
type Logger struct{}

// Info ничего не делает
func (Logger) Info(string, ...interface{}) {}

// Warn ничего не делает
func (Logger) Warn(string, ...interface{}) {}

// Error ничего не делает
func (Logger) Error(string, ...interface{}) {}

// Metrics собирает счетчики событий
type Metrics struct {
	mu     sync.Mutex
	events map[string]int
}

// Record увеличивает счетчик
func (m *Metrics) Record(event string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.events == nil {
		m.events = make(map[string]int)
	}
	m.events[event] += n
}

// Count значение счетчика
func (m *Metrics) Count(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[event]
}
