package domain

import "fmt"

// Channel is the sales channel a booking comes through
type Channel string

const (
	ChannelOnline  Channel = "online"  // self-service checkout
	ChannelStaffed Channel = "staffed" // point-of-sale at the kiosk
)

// Ceiling seat limits of one tour type per channel
type Ceiling struct {
	Online  int
	Staffed int
}

// CapacityPolicy maps (tour type, channel) to a seat ceiling.
// Ceilings come from configuration, the policy itself holds no mutable state.
type CapacityPolicy struct {
	ceilings map[TourType]Ceiling
}

// NewCapacityPolicy copies the ceilings table
func NewCapacityPolicy(ceilings map[TourType]Ceiling) *CapacityPolicy {
	copied := make(map[TourType]Ceiling, len(ceilings))
	for k, v := range ceilings {
		copied[k] = v
	}
	return &CapacityPolicy{ceilings: copied}
}

// Capacity returns the seat ceiling for the tour type and channel
func (p *CapacityPolicy) Capacity(tourType TourType, channel Channel) (int, error) {
	ceiling, ok := p.ceilings[tourType]
	if !ok {
		return 0, fmt.Errorf("%w: no capacity configured for %s", ErrCatalogNotFound, tourType)
	}
	switch channel {
	case ChannelOnline:
		return ceiling.Online, nil
	case ChannelStaffed:
		return ceiling.Staffed, nil
	default:
		return 0, fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, channel)
	}
}

// Composition passenger mix of a booking or request.
// Adults and Children include the wheelchair passengers of that age class.
type Composition struct {
	Adults             int
	Children           int
	WheelchairAdults   int
	WheelchairChildren int
	Infants            int
}

// Seats returns how many seats the composition occupies.
// Every wheelchair passenger takes 3 seats in total, infants take none.
func (c Composition) Seats() int {
	return c.Adults + c.Children + WheelchairExtraSeats*(c.WheelchairAdults+c.WheelchairChildren)
}

// Passengers adults plus children (infants excluded)
func (c Composition) Passengers() int {
	return c.Adults + c.Children
}

// Wheelchairs total wheelchair passengers
func (c Composition) Wheelchairs() int {
	return c.WheelchairAdults + c.WheelchairChildren
}

// Validate checks counts are consistent
func (c Composition) Validate() error {
	if c.Adults < 0 || c.Children < 0 || c.WheelchairAdults < 0 || c.WheelchairChildren < 0 || c.Infants < 0 {
		return fmt.Errorf("%w: passenger counts must not be negative", ErrInvalidInput)
	}
	if c.Passengers() == 0 {
		return fmt.Errorf("%w: at least one adult or child is required", ErrInvalidInput)
	}
	if c.WheelchairAdults > c.Adults {
		return fmt.Errorf("%w: wheelchairAdults exceeds adults", ErrInvalidInput)
	}
	if c.WheelchairChildren > c.Children {
		return fmt.Errorf("%w: wheelchairChildren exceeds children", ErrInvalidInput)
	}
	if c.Passengers()+c.Infants > MaxPassengersPerBooking {
		return fmt.Errorf("%w: at most %d passengers per booking", ErrInvalidInput, MaxPassengersPerBooking)
	}
	return nil
}
