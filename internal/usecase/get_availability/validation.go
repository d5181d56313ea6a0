package get_availability

import "github.com/JakobMartens/inselbahn/internal/domain"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if _, err := domain.ParseTourType(string(req.TourType)); err != nil {
		return ErrInvalidTourType
	}
	if req.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
