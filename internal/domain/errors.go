package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrCatalogNotFound no TourConfig (or capacity entry) matches the date and tour type
	ErrCatalogNotFound = errors.New("domain: tour catalog not found")

	// ErrBookingWindow departure is outside the allowed booking window
	ErrBookingWindow = errors.New("domain: outside booking window")

	// ErrCapacityExceeded slot is full for the requested channel
	ErrCapacityExceeded = errors.New("domain: capacity exceeded")

	// ErrHoldExpired online checkout has no live reservation hold
	ErrHoldExpired = errors.New("domain: reservation hold expired")

	// ErrCancellationWindow not enough notice left to cancel
	ErrCancellationWindow = errors.New("domain: cancellation window closed")

	// ErrNotFound booking lookup miss
	ErrNotFound = errors.New("domain: booking not found")

	// ErrDependency store or transport failure, retryable by the caller
	ErrDependency = errors.New("domain: dependency failure")

	// ErrInvalidInput malformed request data
	ErrInvalidInput = errors.New("domain: invalid input")
)

// CapacityExceededError carries the counts the user-facing message needs
type CapacityExceededError struct {
	Channel   Channel
	Occupied  int
	Requested int
	Ceiling   int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%v: %s channel, occupied %d + requested %d > ceiling %d",
		ErrCapacityExceeded, e.Channel, e.Occupied, e.Requested, e.Ceiling)
}

// Is makes errors.Is(err, ErrCapacityExceeded) match
func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// Remaining seats still free for the channel
func (e *CapacityExceededError) Remaining() int {
	if e.Occupied >= e.Ceiling {
		return 0
	}
	return e.Ceiling - e.Occupied
}

// CancellationWindowError reports the applicable minimum notice
type CancellationWindowError struct {
	RequiredHours  int
	RemainingHours float64
}

func (e *CancellationWindowError) Error() string {
	return fmt.Sprintf("%v: %dh notice required, %.1fh left",
		ErrCancellationWindow, e.RequiredHours, e.RemainingHours)
}

// Is makes errors.Is(err, ErrCancellationWindow) match
func (e *CancellationWindowError) Is(target error) bool {
	return target == ErrCancellationWindow
}

// WrapDependency reduces a store or transport error to ErrDependency,
// keeping the cause as a secondary error for %+v diagnostics
func WrapDependency(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return errors.WithSecondaryError(errors.Wrapf(ErrDependency, "%s: %v", msg, err), err)
}

var taxonomy = []error{
	ErrCatalogNotFound,
	ErrBookingWindow,
	ErrCapacityExceeded,
	ErrHoldExpired,
	ErrCancellationWindow,
	ErrNotFound,
	ErrDependency,
	ErrInvalidInput,
}

// IsClassified returns true if err already maps to one of the sentinel kinds above
func IsClassified(err error) bool {
	for _, kind := range taxonomy {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
