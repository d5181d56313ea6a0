// Package health отвечает на проверки живости и готовности
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Check проверка одной зависимости
type Check func(ctx context.Context) error

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	checks map[string]Check
	logger Logger
}

// NewHandler checks: имя зависимости -> проверка (postgres, redis, mongo)
func NewHandler(checks map[string]Check, logger Logger) *Handler {
	return &Handler{checks: checks, logger: logger}
}

// Response тело ответа health
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("GET /health - %s unavailable: %v", name, err)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	handlers.RespondJSON(w, status, resp)
}
