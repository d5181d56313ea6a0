package statistics

import (
	"fmt"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

var (
	// ErrPeriodRequired возвращается, когда не указан from или to
	ErrPeriodRequired = fmt.Errorf("statistics: from and to are required: %w", domain.ErrInvalidInput)

	// ErrInvalidPeriod возвращается, когда from позже to
	ErrInvalidPeriod = fmt.Errorf("statistics: from is after to: %w", domain.ErrInvalidInput)
)
