package place_hold

import (
	"fmt"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

var (
	// ErrUnknownDeparture возвращается, когда время не входит в расписание тура
	ErrUnknownDeparture = fmt.Errorf("place_hold: unknown departure: %w", domain.ErrInvalidInput)
)

// Имена счетчиков
const (
	EventHoldPlaced   = "hold_placed"
	EventHoldRejected = "hold_rejected"
)
