package cancel_booking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
	cancelBooking "github.com/JakobMartens/inselbahn/internal/usecase/cancel_booking"
)

const msgInvalidBookingID = "Ungültige Buchungsnummer."

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleSelfService POST /api/v1/bookings/cancel
// Отмена клиентом по коду и email с проверкой срока
func (h *Handler) HandleSelfService(w http.ResponseWriter, r *http.Request) {
	var req SelfServiceCancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	result, err := h.useCase.ExecuteSelfService(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.logger.Warn("POST /bookings/cancel - code=%s: %v", req.BookingCode, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /bookings/cancel - Booking cancelled: code=%s", result.Booking.Code)
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}

// HandleAdmin PATCH /api/v1/admin/bookings/{bookingId}/cancel
// Отмена администратором, срок не проверяется
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["bookingId"]
	bookingID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /admin/bookings/{id}/cancel - Invalid booking ID: %s", idStr)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.ExecuteAdmin(r.Context(), &cancelBooking.AdminRequest{BookingID: bookingID})
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/cancel - id=%d: %v", bookingID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/cancel - Booking cancelled: id=%d, code=%s", bookingID, result.Booking.Code)
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}
