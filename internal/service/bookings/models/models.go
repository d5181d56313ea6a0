package models

import (
	"errors"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest фильтр списка бронирований администратора
type ListBookingsRequest struct {
	From     *time.Time `json:"from,omitempty"`     // начало периода (опционально)
	To       *time.Time `json:"to,omitempty"`       // конец периода (опционально)
	TourType *string    `json:"tourType,omitempty"` // опционально
	TourTime *string    `json:"tourTime,omitempty"` // опционально
	Status   *string    `json:"status,omitempty"`   // опционально, по умолчанию все
	Limit    uint64     `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		From:  r.From,
		To:    r.To,
		Limit: r.Limit,
	}

	if r.TourType != nil {
		tourType, err := domain.ParseTourType(*r.TourType)
		if err != nil {
			return filter, err
		}
		filter.TourType = &tourType
	}

	if r.TourTime != nil {
		ts, err := types.NewTimeStringFromString(*r.TourTime)
		if err != nil {
			return filter, err
		}
		filter.TourTime = &ts
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	BookingCode string `json:"bookingCode"`
	TourType    string `json:"tourType"`
	TourDate    string `json:"tourDate"` // "2026-07-01"
	TourTime    string `json:"tourTime"` // "10:00"

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	Adults             int `json:"adults"`
	Children           int `json:"children"`
	WheelchairAdults   int `json:"wheelchairAdults"`
	WheelchairChildren int `json:"wheelchairChildren"`
	Infants            int `json:"infants"`
	Seats              int `json:"seats"`

	TotalCents       int64                  `json:"totalCents"`
	Status           string                 `json:"status"`
	PaymentStatus    string                 `json:"paymentStatus"`
	PaymentMethod    string                 `json:"paymentMethod"`
	InvoiceRequested bool                   `json:"invoiceRequested"`
	Invoice          *domain.InvoiceDetails `json:"invoice,omitempty"`
	StaffedSale      bool                   `json:"staffedSale"`
	Remarks          *string                `json:"remarks,omitempty"`
	Notes            string                 `json:"notes"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BookingCode:        b.Code,
		TourType:           string(b.TourType),
		TourDate:           b.TourDate.Format(domain.DateFormat),
		TourTime:           b.TourTime.String(),
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		Adults:             b.Adults,
		Children:           b.Children,
		WheelchairAdults:   b.WheelchairAdults,
		WheelchairChildren: b.WheelchairChildren,
		Infants:            b.Infants,
		Seats:              b.Composition().Seats(),
		TotalCents:         b.TotalCents,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentMethod:      string(b.EffectivePaymentMethod()),
		InvoiceRequested:   b.InvoiceRequested,
		Invoice:            b.Invoice,
		StaffedSale:        b.StaffedSale,
		Remarks:            b.Remarks,
		Notes:              b.Notes,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch s := domain.BookingStatus(status); s {
	case domain.StatusConfirmed, domain.StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
