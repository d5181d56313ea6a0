package get_statistics

import (
	"net/http"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
)

type Handler struct {
	service StatisticsService
	logger  Logger
}

func NewHandler(service StatisticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/statistics?from=&to=
// Оба параметра обязательны, период включительный
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := handlers.ParseDate(q.Get("from"))
	if err != nil {
		h.logger.Warn("GET /admin/statistics - Invalid from: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}
	to, err := handlers.ParseDate(q.Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/statistics - Invalid to: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.service.Get(r.Context(), from, to)
	if err != nil {
		h.logger.Warn("GET /admin/statistics - %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
