package get_booking

import (
	"context"

	"github.com/JakobMartens/inselbahn/internal/service/bookings/models"
)

type BookingService interface {
	GetByCode(ctx context.Context, code, email string) (*models.BookingResponse, error)
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
