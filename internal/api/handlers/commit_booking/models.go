package commit_booking

import (
	"strings"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/service/bookings/models"
	commitBooking "github.com/JakobMartens/inselbahn/internal/usecase/commit_booking"
)

// CommitBookingRequest HTTP request model.
// SkipReservationCheck переключает на продажу на месте: резерв не нужен,
// действует повышенный потолок мест.
type CommitBookingRequest struct {
	SessionID            string `json:"sessionId"`
	SkipReservationCheck bool   `json:"skipReservationCheck"`

	TourType string `json:"tourType"`
	Date     string `json:"date"`
	Time     string `json:"time"`

	Adults             int `json:"adults"`
	Children           int `json:"children"`
	WheelchairAdults   int `json:"wheelchairAdults"`
	WheelchairChildren int `json:"wheelchairChildren"`
	Infants            int `json:"infants"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	PaymentMethod    string                 `json:"paymentMethod,omitempty"`
	PaymentStatus    *string                `json:"paymentStatus,omitempty"`
	InvoiceRequested bool                   `json:"invoiceRequested"`
	Invoice          *domain.InvoiceDetails `json:"invoice,omitempty"`
	Remarks          *string                `json:"remarks,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *CommitBookingRequest) ToUseCaseRequest() (*commitBooking.Request, error) {
	tourType, err := domain.ParseTourType(r.TourType)
	if err != nil {
		return nil, err
	}
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	t, err := handlers.ParseTime(r.Time)
	if err != nil {
		return nil, err
	}

	channel := domain.ChannelOnline
	if r.SkipReservationCheck {
		channel = domain.ChannelStaffed
	}

	req := &commitBooking.Request{
		Channel:            channel,
		SessionID:          r.SessionID,
		TourType:           tourType,
		Date:               date,
		Time:               t,
		Adults:             r.Adults,
		Children:           r.Children,
		WheelchairAdults:   r.WheelchairAdults,
		WheelchairChildren: r.WheelchairChildren,
		Infants:            r.Infants,
		CustomerName:       r.CustomerName,
		CustomerEmail:      r.CustomerEmail,
		CustomerPhone:      r.CustomerPhone,
		PaymentMethod:      domain.PaymentMethod(strings.ToLower(strings.TrimSpace(r.PaymentMethod))),
		InvoiceRequested:   r.InvoiceRequested,
		Invoice:            r.Invoice,
		Remarks:            r.Remarks,
	}

	if r.PaymentStatus != nil && strings.TrimSpace(*r.PaymentStatus) != "" {
		status := domain.PaymentStatus(strings.TrimSpace(*r.PaymentStatus))
		req.PaymentStatus = &status
	}

	return req, nil
}

// CommitBookingResponse HTTP response model
type CommitBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
}
