package reaper

import (
	"context"
	"time"
)

// HoldRepository интерфейс репозитория резервов
type HoldRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Metrics счетчики событий
type Metrics interface {
	Record(event string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
