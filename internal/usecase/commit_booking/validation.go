package commit_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	switch req.Channel {
	case domain.ChannelOnline:
		if strings.TrimSpace(req.SessionID) == "" {
			return fmt.Errorf("%w: sessionId is required for online checkout", domain.ErrInvalidInput)
		}
		if strings.TrimSpace(req.CustomerName) == "" {
			return fmt.Errorf("%w: customerName is required", domain.ErrInvalidInput)
		}
		if strings.TrimSpace(req.CustomerEmail) == "" {
			return fmt.Errorf("%w: customerEmail is required", domain.ErrInvalidInput)
		}
	case domain.ChannelStaffed:
		if strings.TrimSpace(string(req.PaymentMethod)) == "" {
			return fmt.Errorf("%w: paymentMethod is required for staffed sales", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown channel %q", domain.ErrInvalidInput, req.Channel)
	}

	if _, err := domain.ParseTourType(string(req.TourType)); err != nil {
		return err
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", domain.ErrInvalidInput, err)
	}

	if err := req.Composition().Validate(); err != nil {
		return err
	}

	if len(req.CustomerName) > domain.MaxNameLength {
		return fmt.Errorf("%w: customerName is too long", domain.ErrInvalidInput)
	}

	if email := strings.TrimSpace(req.CustomerEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: invalid customerEmail", domain.ErrInvalidInput)
		}
	}

	if _, ok := domain.ParsePaymentMethod(string(req.PaymentMethod)); !ok {
		return fmt.Errorf("%w: unknown paymentMethod %q", domain.ErrInvalidInput, req.PaymentMethod)
	}

	if req.Remarks != nil && len(*req.Remarks) > domain.MaxRemarksLength {
		return fmt.Errorf("%w: remarks are too long", domain.ErrInvalidInput)
	}

	if req.Invoice != nil {
		if err := validateInvoice(req.Invoice); err != nil {
			return err
		}
	}

	return nil
}

// validateInvoice проверяет обязательные поля реквизитов счета
func validateInvoice(inv *domain.InvoiceDetails) error {
	if strings.TrimSpace(inv.Name) == "" && strings.TrimSpace(inv.Company) == "" {
		return fmt.Errorf("%w: invoice needs a name or company", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(inv.Street) == "" || strings.TrimSpace(inv.PostalCode) == "" || strings.TrimSpace(inv.City) == "" {
		return fmt.Errorf("%w: invoice address is incomplete", domain.ErrInvalidInput)
	}
	return nil
}
