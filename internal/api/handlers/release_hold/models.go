package release_hold

import (
	"github.com/JakobMartens/inselbahn/internal/api/handlers"
	releaseHold "github.com/JakobMartens/inselbahn/internal/usecase/release_hold"
)

// ReleaseHoldRequest HTTP request model
type ReleaseHoldRequest struct {
	SessionID string `json:"sessionId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *ReleaseHoldRequest) ToUseCaseRequest() (*releaseHold.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	t, err := handlers.ParseTime(r.Time)
	if err != nil {
		return nil, err
	}
	return &releaseHold.Request{SessionID: r.SessionID, Date: date, Time: t}, nil
}
