package cancel_booking

import (
	"fmt"
	"strings"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

func validateSelfService(req *SelfServiceRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("%w: bookingCode is required", domain.ErrInvalidInput)
	}
	if !domain.IsValidBookingCode(domain.NormalizeBookingCode(req.Code)) {
		return fmt.Errorf("%w: bookingCode is malformed", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	return nil
}

func validateAdmin(req *AdminRequest) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", domain.ErrInvalidInput)
	}
	return nil
}
