package statistics

import (
	"context"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CapacityPolicy потолки мест по каналам
type CapacityPolicy interface {
	Capacity(tourType domain.TourType, channel domain.Channel) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
