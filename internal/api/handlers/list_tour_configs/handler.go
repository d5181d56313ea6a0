package list_tour_configs

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

func NewHandler(service CatalogService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/tours/{tourType}/configs?date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawType := mux.Vars(r)["tourType"]

	asOf := time.Now().In(h.location)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := handlers.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /admin/tours/{type}/configs - %v", err)
			handlers.RespondDomainError(w, err)
			return
		}
		asOf = parsed
	}

	result, err := h.service.ListVersions(r.Context(), rawType, asOf)
	if err != nil {
		h.logger.Warn("GET /admin/tours/{type}/configs - tour=%s: %v", rawType, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
