package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/service/bookings/models"
)

const maxLimit = 1000

// parseQuery собирает фильтр из query параметров
func parseQuery(q url.Values) (*models.ListBookingsRequest, error) {
	from, err := handlers.ParseOptionalDate(q.Get("from"))
	if err != nil {
		return nil, err
	}
	to, err := handlers.ParseOptionalDate(q.Get("to"))
	if err != nil {
		return nil, err
	}

	req := &models.ListBookingsRequest{
		From:     from,
		To:       to,
		TourType: optional(q.Get("tourType")),
		TourTime: optional(q.Get("tourTime")),
		Status:   optional(q.Get("status")),
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit > maxLimit {
			return nil, fmt.Errorf("%w: limit must be between 0 and %d", domain.ErrInvalidInput, maxLimit)
		}
		req.Limit = limit
	}

	return req, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
