package domain

import "time"

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Booking window defaults
const (
	DefaultMinBookingNotice  = time.Hour
	DefaultMaxBookingAdvance = 7 * 24 * time.Hour
	DefaultHoldTTL           = 10 * time.Minute
)

// Cancellation policy
const (
	LargeGroupThreshold    = 8
	LargeGroupCancelNotice = 72 * time.Hour
	StandardCancelNotice   = 24 * time.Hour
)

// Seat accounting
const (
	// WheelchairExtraSeats extra seats on top of the passenger's own seat
	WheelchairExtraSeats = 2

	// WheelchairSeats total seats a wheelchair passenger occupies
	WheelchairSeats = 1 + WheelchairExtraSeats
)

// Business validation constants
const (
	MaxPassengersPerBooking = 60
	MaxNameLength           = 200
	MaxRemarksLength        = 500
	MaxSessionIDLength      = 128
)
