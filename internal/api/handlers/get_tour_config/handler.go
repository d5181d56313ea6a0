package get_tour_config

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
)

type Handler struct {
	service  CatalogService
	location *time.Location
	logger   Logger
}

// NewHandler location нужен, чтобы без параметра date брать сегодняшний день по местному времени
func NewHandler(service CatalogService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/tours/{tourType}/config?date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawType := mux.Vars(r)["tourType"]

	date := time.Now().In(h.location)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := handlers.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /tours/{type}/config - %v", err)
			handlers.RespondDomainError(w, err)
			return
		}
		date = parsed
	}

	cfg, err := h.service.GetCurrent(r.Context(), rawType, date)
	if err != nil {
		h.logger.Warn("GET /tours/{type}/config - tour=%s: %v", rawType, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cfg)
}
