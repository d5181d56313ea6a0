package place_hold

import (
	"fmt"
	"strings"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return fmt.Errorf("%w: sessionId is required", domain.ErrInvalidInput)
	}
	if len(sessionID) > domain.MaxSessionIDLength {
		return fmt.Errorf("%w: sessionId is too long", domain.ErrInvalidInput)
	}

	if _, err := domain.ParseTourType(string(req.TourType)); err != nil {
		return err
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", domain.ErrInvalidInput, err)
	}

	if req.Seats <= 0 {
		return fmt.Errorf("%w: seats must be positive", domain.ErrInvalidInput)
	}
	// Коляска занимает 3 места, поэтому максимум больше числа пассажиров
	if req.Seats > domain.MaxPassengersPerBooking*domain.WheelchairSeats {
		return fmt.Errorf("%w: too many seats requested", domain.ErrInvalidInput)
	}

	return nil
}
