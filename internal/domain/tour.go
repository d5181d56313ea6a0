package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/JakobMartens/inselbahn/pkg/types"
)

// TourType identifies one of the tour products
type TourType string

const (
	TourUnterland TourType = "UNTERLAND"
	TourPremium   TourType = "PREMIUM"
)

// TourTypes lists all supported tour products
var TourTypes = []TourType{TourUnterland, TourPremium}

// ParseTourType parses a tour type case-insensitively
func ParseTourType(s string) (TourType, error) {
	candidate := TourType(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range TourTypes {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tour type %q", ErrInvalidInput, s)
}

// TourConfig is a versioned catalog entry for a tour type.
// Prices are integer cents.
type TourConfig struct {
	ID              int64
	TourType        TourType
	TimeSlots       []types.TimeString
	AdultPriceCents int64
	ChildPriceCents int64
	FreeChildTimes  []types.TimeString
	ValidFrom       time.Time
	ValidUntil      *time.Time // nil = open-ended
	CreatedAt       time.Time
}

// HasSlot returns true if the time is one of the configured departures
func (c *TourConfig) HasSlot(t types.TimeString) bool {
	for _, slot := range c.TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// IsChildFree returns true if children ride free at the given departure
func (c *TourConfig) IsChildFree(t types.TimeString) bool {
	for _, slot := range c.FreeChildTimes {
		if slot == t {
			return true
		}
	}
	return false
}

// CoversDate returns true if the config validity interval contains the date
func (c *TourConfig) CoversDate(date time.Time) bool {
	day := dateOnly(date)
	if dateOnly(c.ValidFrom).After(day) {
		return false
	}
	return c.ValidUntil == nil || !dateOnly(*c.ValidUntil).Before(day)
}

// CurrentTourConfig picks the config with the latest ValidFrom that covers the date.
// Returns nil when nothing matches.
func CurrentTourConfig(configs []*TourConfig, tourType TourType, date time.Time) *TourConfig {
	var current *TourConfig
	for _, cfg := range configs {
		if cfg.TourType != tourType || !cfg.CoversDate(date) {
			continue
		}
		if current == nil || cfg.ValidFrom.After(current.ValidFrom) {
			current = cfg
		}
	}
	return current
}

// Slot is one departure: (tourDate, tourTime, tourType)
type Slot struct {
	Date     time.Time
	Time     types.TimeString
	TourType TourType
}

// NewSlot normalizes the date to midnight UTC
func NewSlot(date time.Time, t types.TimeString, tourType TourType) Slot {
	return Slot{Date: dateOnly(date), Time: t, TourType: tourType}
}

// Key is a stable identifier used for per-slot locking
func (s Slot) Key() string {
	return fmt.Sprintf("%s|%s|%s", s.Date.Format(DateFormat), s.Time, s.TourType)
}

// StartsAt returns the departure instant in the given location
func (s Slot) StartsAt(loc *time.Location) (time.Time, error) {
	return s.Time.On(s.Date, loc)
}

// Matches returns true if the other slot is the same departure
func (s Slot) Matches(other Slot) bool {
	return s.TourType == other.TourType && s.Time == other.Time && sameDay(s.Date, other.Date)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
