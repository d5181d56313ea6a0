package commit_booking

import (
	"net/http"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
	"github.com/JakobMartens/inselbahn/internal/service/bookings/models"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Онлайн-оформление по резерву или продажа на месте (skipReservationCheck)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CommitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		h.logger.Warn("POST /bookings - channel=%s, tour=%s, slot=%s %s: %v",
			ucReq.Channel, ucReq.TourType, req.Date, req.Time, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /bookings - Booking committed: code=%s, seats=%d", result.Booking.Code, result.Seats)
	handlers.RespondJSON(w, http.StatusCreated, CommitBookingResponse{
		Booking: models.FromDomainBooking(result.Booking),
	})
}
