package commit_booking

import (
	"context"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListConfirmedByDate(ctx context.Context, date time.Time, tourType domain.TourType, tourTime string) ([]*domain.Booking, error)
}

// TourRepository интерфейс репозитория каталога туров
type TourRepository interface {
	GetCurrent(ctx context.Context, tourType domain.TourType, date time.Time) (*domain.TourConfig, error)
}

// HoldRepository интерфейс репозитория резервов
type HoldRepository interface {
	GetLive(ctx context.Context, sessionID string, tourType domain.TourType, date time.Time, tourTime string, now time.Time) (*domain.ReservationHold, error)
	ListLive(ctx context.Context, date time.Time, tourType domain.TourType, tourTime string, now time.Time) ([]*domain.ReservationHold, error)
	Delete(ctx context.Context, sessionID string, date time.Time, tourTime string) error
}

// SlotGuard сериализует read-check-write по одному слоту.
// fn выполняется внутри транзакции, переданной через ctx.
type SlotGuard interface {
	Do(ctx context.Context, slot domain.Slot, fn func(ctx context.Context) error) error
}

// CapacityPolicy потолки мест по каналам
type CapacityPolicy interface {
	Capacity(tourType domain.TourType, channel domain.Channel) (int, error)
}

// CodeGenerator генератор кодов бронирования
type CodeGenerator interface {
	Generate() (string, error)
}

// Notifier письма клиенту
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *domain.Booking) error
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
