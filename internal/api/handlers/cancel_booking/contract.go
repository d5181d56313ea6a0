package cancel_booking

import (
	"context"

	cancelBooking "github.com/JakobMartens/inselbahn/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	ExecuteSelfService(ctx context.Context, req *cancelBooking.SelfServiceRequest) (*cancelBooking.Response, error)
	ExecuteAdmin(ctx context.Context, req *cancelBooking.AdminRequest) (*cancelBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
