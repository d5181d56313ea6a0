package domain

import (
	"strings"
	"time"

	"github.com/JakobMartens/inselbahn/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus payment state label. Besides pending/paid a channel may
// record its own label.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentMethod how the customer pays
type PaymentMethod string

const (
	PaymentOnline  PaymentMethod = "online"
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentInvoice PaymentMethod = "invoice"
)

// ParsePaymentMethod validates a payment method. Empty input yields "".
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case "", PaymentOnline, PaymentCash, PaymentCard, PaymentInvoice:
		return m, true
	default:
		return "", false
	}
}

// InvoiceDetails billing address for invoice-on-account sales
type InvoiceDetails struct {
	Company    string `json:"company,omitempty"`
	Name       string `json:"name"`
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	VatID      string `json:"vatId,omitempty"`
}

// Booking represents a confirmed or cancelled sale of seats on one departure
type Booking struct {
	ID       int64
	Code     string
	TourType TourType
	TourDate time.Time
	TourTime types.TimeString

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string

	// Adults и Children уже включают пассажиров на коляске
	Adults             int
	Children           int
	WheelchairAdults   int
	WheelchairChildren int
	Infants            int

	TotalCents       int64
	Status           BookingStatus
	PaymentStatus    PaymentStatus
	PaymentMethod    PaymentMethod
	InvoiceRequested bool
	Invoice          *InvoiceDetails
	StaffedSale      bool
	Remarks          *string
	Notes            string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Composition returns the passenger mix of the booking
func (b *Booking) Composition() Composition {
	return Composition{
		Adults:             b.Adults,
		Children:           b.Children,
		WheelchairAdults:   b.WheelchairAdults,
		WheelchairChildren: b.WheelchairChildren,
		Infants:            b.Infants,
	}
}

// Slot returns the departure the booking belongs to
func (b *Booking) Slot() Slot {
	return NewSlot(b.TourDate, b.TourTime, b.TourType)
}

// IsConfirmed returns true if the booking still consumes seats
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// MatchesEmail compares the customer email case-insensitively
func (b *Booking) MatchesEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(b.CustomerEmail), strings.TrimSpace(email))
}

// EffectivePaymentMethod falls back to online when no method was recorded
func (b *Booking) EffectivePaymentMethod() PaymentMethod {
	if b.PaymentMethod == "" {
		return PaymentOnline
	}
	return b.PaymentMethod
}

// BookingsFilter filter for booking listings
type BookingsFilter struct {
	From     *time.Time        // начало периода включительно (опционально)
	To       *time.Time        // конец периода включительно (опционально)
	TourType *TourType         // опционально
	TourTime *types.TimeString // опционально
	Status   *BookingStatus    // nil = все статусы
	Limit    uint64            // 0 = без ограничения
}
