package commit_booking

import (
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

// Request модель запроса на оформление бронирования.
// Adults и Children включают пассажиров на коляске.
type Request struct {
	Channel   domain.Channel // online или staffed (skipReservationCheck)
	SessionID string         // обязателен для online

	TourType domain.TourType
	Date     time.Time        // дата отправления (без времени)
	Time     types.TimeString // время отправления

	Adults             int
	Children           int
	WheelchairAdults   int
	WheelchairChildren int
	Infants            int

	CustomerName  string
	CustomerEmail string  // для продаж на месте можно не указывать
	CustomerPhone *string // опционально

	PaymentMethod    domain.PaymentMethod
	PaymentStatus    *domain.PaymentStatus // явное значение имеет приоритет
	InvoiceRequested bool
	Invoice          *domain.InvoiceDetails
	Remarks          *string
}

// Composition состав пассажиров запроса
func (r *Request) Composition() domain.Composition {
	return domain.Composition{
		Adults:             r.Adults,
		Children:           r.Children,
		WheelchairAdults:   r.WheelchairAdults,
		WheelchairChildren: r.WheelchairChildren,
		Infants:            r.Infants,
	}
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Seats   int // занято мест
}

// Settings параметры оформления
type Settings struct {
	Window            domain.BookingWindow
	Location          *time.Location
	CodeRetryAttempts int
	WalkInEmail       string
	WalkInName        string
}
