package models

import (
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// TourConfigResponse ответ с действующей конфигурацией тура
type TourConfigResponse struct {
	ID              int64    `json:"id"`
	TourType        string   `json:"tourType"`
	TimeSlots       []string `json:"timeSlots"`
	AdultPriceCents int64    `json:"adultPriceCents"`
	ChildPriceCents int64    `json:"childPriceCents"`
	FreeChildTimes  []string `json:"freeChildTimes"`
	OnlineCapacity  int      `json:"onlineCapacity"`
	StaffedCapacity int      `json:"staffedCapacity"`
	ValidFrom       string   `json:"validFrom"`
	ValidUntil      *string  `json:"validUntil,omitempty"`
	Current         bool     `json:"current"` // действует на запрошенную дату

	CreatedAt time.Time `json:"createdAt"`
}

// TourConfigListResponse ответ со списком версий конфигурации
type TourConfigListResponse struct {
	Configs []TourConfigResponse `json:"configs"`
}

// FromDomainTourConfig конвертирует domain модель в DTO
func FromDomainTourConfig(cfg *domain.TourConfig, onlineCapacity, staffedCapacity int) *TourConfigResponse {
	if cfg == nil {
		return nil
	}

	resp := &TourConfigResponse{
		ID:              cfg.ID,
		TourType:        string(cfg.TourType),
		TimeSlots:       make([]string, 0, len(cfg.TimeSlots)),
		AdultPriceCents: cfg.AdultPriceCents,
		ChildPriceCents: cfg.ChildPriceCents,
		FreeChildTimes:  make([]string, 0, len(cfg.FreeChildTimes)),
		OnlineCapacity:  onlineCapacity,
		StaffedCapacity: staffedCapacity,
		ValidFrom:       cfg.ValidFrom.Format(domain.DateFormat),
		CreatedAt:       cfg.CreatedAt,
	}
	for _, t := range cfg.TimeSlots {
		resp.TimeSlots = append(resp.TimeSlots, t.String())
	}
	for _, t := range cfg.FreeChildTimes {
		resp.FreeChildTimes = append(resp.FreeChildTimes, t.String())
	}
	if cfg.ValidUntil != nil {
		until := cfg.ValidUntil.Format(domain.DateFormat)
		resp.ValidUntil = &until
	}

	return resp
}
