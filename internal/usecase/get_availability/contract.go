package get_availability

import (
	"context"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// TourRepository интерфейс репозитория каталога туров
type TourRepository interface {
	GetCurrent(ctx context.Context, tourType domain.TourType, date time.Time) (*domain.TourConfig, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmedByDate(ctx context.Context, date time.Time, tourType domain.TourType, tourTime string) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория резервов
type HoldRepository interface {
	ListLive(ctx context.Context, date time.Time, tourType domain.TourType, tourTime string, now time.Time) ([]*domain.ReservationHold, error)
}

// Reaper очистка просроченных резервов перед чтением
type Reaper interface {
	ReapExpired(ctx context.Context, now time.Time) (int64, error)
}

// CapacityPolicy потолки мест по каналам
type CapacityPolicy interface {
	Capacity(tourType domain.TourType, channel domain.Channel) (int, error)
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
