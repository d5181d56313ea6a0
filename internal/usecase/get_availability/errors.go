package get_availability

import (
	"fmt"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

var (
	// ErrInvalidTourType возвращается для неизвестного типа тура
	ErrInvalidTourType = fmt.Errorf("get_availability: invalid tour type: %w", domain.ErrInvalidInput)

	// ErrInvalidDate возвращается, когда дата не указана
	ErrInvalidDate = fmt.Errorf("get_availability: date is required: %w", domain.ErrInvalidInput)
)
