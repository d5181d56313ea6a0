package get_availability

import (
	"github.com/JakobMartens/inselbahn/internal/domain"
	getAvailability "github.com/JakobMartens/inselbahn/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TourType        string         `json:"tourType"`
	Date            string         `json:"date"`
	Capacity        int            `json:"capacity"`
	AdultPriceCents int64          `json:"adultPriceCents"`
	ChildPriceCents int64          `json:"childPriceCents"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse доступность одного отправления
type SlotResponse struct {
	Time               string `json:"time"`
	Remaining          int    `json:"remaining"`
	Occupied           int    `json:"occupied"`
	Held               int    `json:"held"`
	Bookable           bool   `json:"bookable"`
	WheelchairEligible bool   `json:"wheelchairEligible"`
	ChildFree          bool   `json:"childFree"`
	AdultPriceCents    int64  `json:"adultPriceCents"`
	ChildPriceCents    int64  `json:"childPriceCents"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		TourType:        string(resp.TourType),
		Date:            resp.Date.Format(domain.DateFormat),
		Capacity:        resp.Capacity,
		AdultPriceCents: resp.AdultPriceCents,
		ChildPriceCents: resp.ChildPriceCents,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			Time:               s.Time.String(),
			Remaining:          s.Remaining,
			Occupied:           s.Occupied,
			Held:               s.Held,
			Bookable:           s.WindowOpen && s.Remaining > 0,
			WheelchairEligible: s.WheelchairEligible,
			ChildFree:          s.ChildFree,
			AdultPriceCents:    s.AdultPriceCents,
			ChildPriceCents:    s.ChildPriceCents,
		})
	}
	return result
}
