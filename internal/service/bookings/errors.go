package bookings

import (
	"fmt"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

var (
	// ErrInvalidPeriod возвращается, когда from позже to
	ErrInvalidPeriod = fmt.Errorf("bookings: from is after to: %w", domain.ErrInvalidInput)

	// ErrInvalidFilter возвращается при некорректном статусе или типе тура в фильтре
	ErrInvalidFilter = fmt.Errorf("bookings: invalid filter: %w", domain.ErrInvalidInput)
)
