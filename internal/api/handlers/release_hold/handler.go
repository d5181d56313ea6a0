package release_hold

import (
	"net/http"

	"github.com/JakobMartens/inselbahn/internal/api/handlers"
)

type Handler struct {
	useCase ReleaseHoldUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/holds
// Идемпотентно: отсутствующий резерв тоже дает 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReleaseHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequest)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("DELETE /holds - Invalid request: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	if err := h.useCase.Execute(r.Context(), ucReq); err != nil {
		h.logger.Warn("DELETE /holds - session=%s: %v", req.SessionID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
