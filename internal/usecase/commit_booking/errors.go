package commit_booking

import (
	"fmt"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

var (
	// ErrUnknownDeparture возвращается, когда время не входит в расписание тура
	ErrUnknownDeparture = fmt.Errorf("commit_booking: unknown departure: %w", domain.ErrInvalidInput)

	// ErrCodeExhausted возвращается, когда все попытки сгенерировать уникальный код заняты.
	// Повторяемая ошибка хранилища.
	ErrCodeExhausted = fmt.Errorf("commit_booking: booking code retries exhausted: %w", domain.ErrDependency)
)

// Имена счетчиков
const (
	EventBookingCommitted = "booking_committed"
	EventBookingRejected  = "booking_rejected"
)
