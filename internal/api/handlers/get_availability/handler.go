package get_availability

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
	"github.com/JakobMartens/inselbahn/internal/domain"
	getAvailability "github.com/JakobMartens/inselbahn/internal/usecase/get_availability"
)

const (
	msgMissingDate = "Bitte geben Sie ein Datum an."
	msgInvalidDate = "Ungültiges Datum, erwartet wird JJJJ-MM-TT."
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourType}/availability
// Query params: date (required, YYYY-MM-DD), sessionId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawType := mux.Vars(r)["tourType"]
	tourType, err := domain.ParseTourType(rawType)
	if err != nil {
		h.logger.Warn("GET /tours/{type}/availability - Invalid tour type: %s", rawType)
		handlers.RespondDomainError(w, err)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tours/{type}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /tours/{type}/availability - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		TourType:  tourType,
		Date:      date,
		SessionID: r.URL.Query().Get("sessionId"),
	})
	if err != nil {
		h.logger.Warn("GET /tours/{type}/availability - tour=%s, date=%s: %v", tourType, dateStr, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
