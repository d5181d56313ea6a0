package get_availability

import (
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

// Request запрос доступности на дату
type Request struct {
	TourType  domain.TourType
	Date      time.Time
	SessionID string // опционально: собственный резерв сессии не уменьшает остаток
}

// Response доступность всех отправлений дня
type Response struct {
	TourType        domain.TourType
	Date            time.Time
	AdultPriceCents int64
	ChildPriceCents int64
	Capacity        int // онлайн-потолок
	Slots           []SlotAvailability
}

// SlotAvailability доступность одного отправления
type SlotAvailability struct {
	Time               types.TimeString
	Remaining          int  // свободно онлайн, не меньше 0
	Occupied           int  // места подтвержденных бронирований
	Held               int  // места живых резервов
	WindowOpen         bool // отправление в окне бронирования
	WheelchairEligible bool // хватает мест для пассажира на коляске
	ChildFree          bool // дети бесплатно
	AdultPriceCents    int64
	ChildPriceCents    int64
}
