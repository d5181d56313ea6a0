package place_hold

import (
	"time"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
	"github.com/JakobMartens/inselbahn/internal/domain"
	placeHold "github.com/JakobMartens/inselbahn/internal/usecase/place_hold"
)

// PlaceHoldRequest HTTP request model
type PlaceHoldRequest struct {
	SessionID string `json:"sessionId"`
	TourType  string `json:"tourType"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Seats     int    `json:"seats"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *PlaceHoldRequest) ToUseCaseRequest() (*placeHold.Request, error) {
	tourType, err := domain.ParseTourType(r.TourType)
	if err != nil {
		return nil, err
	}
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	t, err := handlers.ParseTime(r.Time)
	if err != nil {
		return nil, err
	}

	return &placeHold.Request{
		SessionID: r.SessionID,
		TourType:  tourType,
		Date:      date,
		Time:      t,
		Seats:     r.Seats,
	}, nil
}

// HoldResponse HTTP response model
type HoldResponse struct {
	SessionID string    `json:"sessionId"`
	TourType  string    `json:"tourType"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Seats     int       `json:"seats"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *placeHold.Response) *HoldResponse {
	return &HoldResponse{
		SessionID: resp.SessionID,
		TourType:  string(resp.TourType),
		Date:      resp.Date.Format(domain.DateFormat),
		Time:      resp.Time.String(),
		Seats:     resp.Seats,
		ExpiresAt: resp.ExpiresAt,
	}
}
