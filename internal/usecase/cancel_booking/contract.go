package cancel_booking

import (
	"context"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, at time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier письма клиенту
type Notifier interface {
	BookingCancelled(ctx context.Context, b *domain.Booking) error
}

// AuditRecorder журнал событий
type AuditRecorder interface {
	Record(ctx context.Context, action, subject string, data map[string]interface{}) error
}

// Metrics счетчики событий
type Metrics interface {
	Record(event string, n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
