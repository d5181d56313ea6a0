package cancel_booking

import (
	"github.com/JakobMartens/inselbahn/internal/service/bookings/models"
	cancelBooking "github.com/JakobMartens/inselbahn/internal/usecase/cancel_booking"
)

// SelfServiceCancelRequest HTTP request model для отмены клиентом
type SelfServiceCancelRequest struct {
	BookingCode string `json:"bookingCode"`
	Email       string `json:"email"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *SelfServiceCancelRequest) ToUseCaseRequest() *cancelBooking.SelfServiceRequest {
	return &cancelBooking.SelfServiceRequest{Code: r.BookingCode, Email: r.Email}
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
}

func fromUseCaseResponse(resp *cancelBooking.Response) CancelBookingResponse {
	return CancelBookingResponse{Booking: models.FromDomainBooking(resp.Booking)}
}
