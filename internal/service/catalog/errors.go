package catalog

import (
	"fmt"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

var (
	// ErrInvalidDate возвращается при пустой дате
	ErrInvalidDate = fmt.Errorf("catalog: date is required: %w", domain.ErrInvalidInput)
)
