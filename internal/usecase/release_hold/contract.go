package release_hold

import (
	"context"
	"time"
)

// HoldRepository интерфейс репозитория резервов
type HoldRepository interface {
	Delete(ctx context.Context, sessionID string, date time.Time, tourTime string) error
}

// AuditRecorder журнал событий
type AuditRecorder interface {
	Record(ctx context.Context, action, subject string, data map[string]interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
