package domain

import (
	"fmt"
	"math"
	"time"
)

// BookingWindow allowed distance between now and the departure
type BookingWindow struct {
	MinNotice  time.Duration
	MaxAdvance time.Duration
}

// DefaultBookingWindow [1h, 7d]
func DefaultBookingWindow() BookingWindow {
	return BookingWindow{
		MinNotice:  DefaultMinBookingNotice,
		MaxAdvance: DefaultMaxBookingAdvance,
	}
}

// IsOpen returns true if a departure at start may be booked at now (bounds inclusive)
func (w BookingWindow) IsOpen(start, now time.Time) bool {
	until := start.Sub(now)
	return until >= w.MinNotice && until <= w.MaxAdvance
}

// Check returns ErrBookingWindow when the departure is too close or too far
func (w BookingWindow) Check(start, now time.Time) error {
	until := start.Sub(now)
	if until < w.MinNotice {
		return fmt.Errorf("%w: departure %s is less than %s ahead",
			ErrBookingWindow, start.Format(time.RFC3339), w.MinNotice)
	}
	if until > w.MaxAdvance {
		return fmt.Errorf("%w: departure %s is more than %s ahead",
			ErrBookingWindow, start.Format(time.RFC3339), w.MaxAdvance)
	}
	return nil
}

// RequiredCancelNotice 72h for groups of 8 or more passengers, 24h otherwise
func RequiredCancelNotice(c Composition) time.Duration {
	if c.Passengers() >= LargeGroupThreshold {
		return LargeGroupCancelNotice
	}
	return StandardCancelNotice
}

// CheckCancelNotice fails with CancellationWindowError if less notice than required remains
func CheckCancelNotice(c Composition, start, now time.Time) error {
	required := RequiredCancelNotice(c)
	remaining := start.Sub(now)
	if remaining < required {
		return &CancellationWindowError{
			RequiredHours:  int(required / time.Hour),
			RemainingHours: math.Max(0, remaining.Hours()),
		}
	}
	return nil
}
