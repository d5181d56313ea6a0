package place_hold

import (
	"net/http"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
)

type Handler struct {
	useCase PlaceHoldUseCase
	logger  Logger
}

func NewHandler(useCase PlaceHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
// Создает или продлевает резерв мест сессии на отправление
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PlaceHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /holds - Invalid request: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		h.logger.Warn("POST /holds - session=%s, slot=%s %s: %v", req.SessionID, req.Date, req.Time, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /holds - Hold placed: session=%s, seats=%d", result.SessionID, result.Seats)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
