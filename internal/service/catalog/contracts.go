package catalog

import (
	"context"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// TourRepository интерфейс репозитория каталога туров
type TourRepository interface {
	GetCurrent(ctx context.Context, tourType domain.TourType, date time.Time) (*domain.TourConfig, error)
	ListByType(ctx context.Context, tourType domain.TourType) ([]*domain.TourConfig, error)
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
