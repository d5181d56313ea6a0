package domain

import "time"

// Occupancy sums seats consumed by confirmed bookings of the slot.
// Cancelled bookings and bookings of other departures contribute nothing.
func Occupancy(slot Slot, bookings []*Booking) int {
	total := 0
	for _, b := range bookings {
		if b == nil || !b.IsConfirmed() || !b.Slot().Matches(slot) {
			continue
		}
		total += b.Composition().Seats()
	}
	return total
}

// HeldSeats sums seats of live holds on the slot.
// Holds of excludeSession are skipped: a session's own hold is replaced, not stacked.
func HeldSeats(slot Slot, holds []*ReservationHold, now time.Time, excludeSession string) int {
	total := 0
	for _, h := range holds {
		if h == nil || !h.IsLive(now) || !h.Slot().Matches(slot) {
			continue
		}
		if excludeSession != "" && h.SessionID == excludeSession {
			continue
		}
		total += h.Seats
	}
	return total
}

// CheckCapacity fails with CapacityExceededError when occupied+requested exceeds the ceiling
func CheckCapacity(channel Channel, occupied, requested, ceiling int) error {
	if occupied+requested > ceiling {
		return &CapacityExceededError{
			Channel:   channel,
			Occupied:  occupied,
			Requested: requested,
			Ceiling:   ceiling,
		}
	}
	return nil
}
