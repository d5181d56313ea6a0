package place_hold

import (
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

// Request запрос на резерв мест во время онлайн-оформления
type Request struct {
	SessionID string
	TourType  domain.TourType
	Date      time.Time        // дата отправления (без времени)
	Time      types.TimeString // время отправления
	Seats     int
}

// Response созданный или продленный резерв
type Response struct {
	SessionID string
	TourType  domain.TourType
	Date      time.Time
	Time      types.TimeString
	Seats     int
	ExpiresAt time.Time
}

// Settings параметры резервирования
type Settings struct {
	Window   domain.BookingWindow
	HoldTTL  time.Duration
	Location *time.Location
}
