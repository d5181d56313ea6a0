// Package handlers общие помощники HTTP слоя: разбор JSON и ответы с ошибками
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

const maxBodyBytes = 1 << 20

const (
	MsgInvalidRequest     = "Ungültige Anfrage. Bitte prüfen Sie Ihre Eingaben."
	MsgCatalogNotFound    = "Für dieses Datum wird keine Fahrt angeboten."
	MsgBookingWindow      = "Buchungen sind frühestens 7 Tage und spätestens 1 Stunde vor Abfahrt möglich."
	MsgHoldExpired        = "Ihre Platzreservierung ist abgelaufen. Bitte wählen Sie die Plätze erneut aus."
	MsgNotFound           = "Buchung nicht gefunden."
	MsgDependency         = "Der Dienst ist vorübergehend nicht erreichbar. Bitte versuchen Sie es gleich noch einmal."
	MsgInternal           = "Interner Serverfehler."
	msgCapacityTemplate   = "Leider sind für diese Fahrt nur noch %d Plätze frei."
	msgSoldOut            = "Diese Fahrt ist leider ausgebucht."
	msgCancelNoticeFormat = "Eine Stornierung ist nur bis %d Stunden vor Abfahrt möglich."
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Remaining     *int   `json:"remaining,omitempty"`
	RequiredHours *int   `json:"requiredHours,omitempty"`
}

// DecodeJSON разбирает тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// RespondJSON пишет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет ошибку с кодом и сообщением для пользователя
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: http.StatusText(status), Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondDomainError переводит ошибку движка в HTTP ответ.
// Детали ошибки в ответ не попадают, их пишет в лог вызывающий handler.
func RespondDomainError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{Error: http.StatusText(status)}

	var capErr *domain.CapacityExceededError
	var windowErr *domain.CancellationWindowError

	switch {
	case errors.As(err, &capErr):
		remaining := capErr.Remaining()
		resp.Remaining = &remaining
		if remaining == 0 {
			resp.Message = msgSoldOut
		} else {
			resp.Message = fmt.Sprintf(msgCapacityTemplate, remaining)
		}
	case errors.Is(err, domain.ErrCapacityExceeded):
		resp.Message = msgSoldOut
	case errors.As(err, &windowErr):
		required := windowErr.RequiredHours
		resp.RequiredHours = &required
		resp.Message = fmt.Sprintf(msgCancelNoticeFormat, required)
	default:
		resp.Message = messageFor(err)
	}

	RespondJSON(w, status, resp)
}

// StatusFor HTTP статус для категории ошибки
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCatalogNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBookingWindow), errors.Is(err, domain.ErrCancellationWindow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, domain.ErrHoldExpired):
		return http.StatusGone
	case errors.Is(err, domain.ErrDependency):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return MsgInvalidRequest
	case errors.Is(err, domain.ErrCatalogNotFound):
		return MsgCatalogNotFound
	case errors.Is(err, domain.ErrBookingWindow):
		return MsgBookingWindow
	case errors.Is(err, domain.ErrHoldExpired):
		return MsgHoldExpired
	case errors.Is(err, domain.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, domain.ErrDependency):
		return MsgDependency
	default:
		return MsgInternal
	}
}
