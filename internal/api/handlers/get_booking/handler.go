package get_booking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
)

const msgInvalidBookingID = "Ungültige Buchungsnummer."

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingCode}?email=
// Клиент видит бронирование только при совпадении email
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["bookingCode"]
	email := r.URL.Query().Get("email")

	booking, err := h.service.GetByCode(r.Context(), code, email)
	if err != nil {
		h.logger.Warn("GET /bookings/{code} - code=%s: %v", code, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleAdmin GET /api/v1/admin/bookings/{bookingId}
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["bookingId"]
	bookingID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /admin/bookings/{id} - Invalid booking ID: %s", idStr)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		h.logger.Warn("GET /admin/bookings/{id} - id=%d: %v", bookingID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}
