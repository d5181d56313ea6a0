package domain

import (
	"time"

	"github.com/JakobMartens/inselbahn/pkg/types"
)

// ReservationHold is a short-lived claim on seats during online checkout.
// Natural key: (SessionID, TourDate, TourTime).
type ReservationHold struct {
	SessionID string
	TourDate  time.Time
	TourTime  types.TimeString
	TourType  TourType
	Seats     int
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsLive returns true while the hold counts toward occupancy
func (h *ReservationHold) IsLive(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}

// Slot returns the departure the hold belongs to
func (h *ReservationHold) Slot() Slot {
	return NewSlot(h.TourDate, h.TourTime, h.TourType)
}
