package cancel_booking

import "github.com/JakobMartens/inselbahn/internal/domain"

// SelfServiceRequest отмена клиентом по коду и email
type SelfServiceRequest struct {
	Code  string
	Email string
}

// AdminRequest отмена администратором по id, без проверки срока
type AdminRequest struct {
	BookingID int64
}

// Response отмененное бронирование
type Response struct {
	Booking *domain.Booking
}
