// Package notifications формирует письма о бронировании и отмене
package notifications

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/integrations/mailer"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

var tourNames = map[domain.TourType]string{
	domain.TourUnterland: "Unterland-Rundfahrt",
	domain.TourPremium:   "Premium-Inselrundfahrt",
}

// Service отправляет письма клиентам
type Service struct {
	sender      Sender
	walkInEmail string
	logger      Logger
}

// NewService создает сервис уведомлений.
// На адрес-заглушку продаж на месте письма не отправляются.
func NewService(sender Sender, walkInEmail string, logger Logger) *Service {
	return &Service{sender: sender, walkInEmail: walkInEmail, logger: logger}
}

type emailData struct {
	Name        string
	Code        string
	Tour        string
	Date        string
	Time        string
	Adults      int
	Children    int
	Infants     int
	Wheelchairs int
	Total       string
	Payment     string
	CancelHours int
}

// BookingConfirmed письмо с подтверждением бронирования
func (s *Service) BookingConfirmed(ctx context.Context, b *domain.Booking) error {
	return s.send(ctx, b, "confirmation.html", fmt.Sprintf("Buchungsbestätigung %s", b.Code))
}

// BookingCancelled письмо об отмене бронирования
func (s *Service) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	return s.send(ctx, b, "cancellation.html", fmt.Sprintf("Stornierung %s", b.Code))
}

func (s *Service) send(ctx context.Context, b *domain.Booking, tmpl, subject string) error {
	if b.CustomerEmail == "" || strings.EqualFold(b.CustomerEmail, s.walkInEmail) {
		s.logger.Info("Notifications: booking %s has no customer email, skipping %s", b.Code, tmpl)
		return nil
	}

	body, err := render(tmpl, newEmailData(b))
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, mailer.Message{To: b.CustomerEmail, Subject: subject, HTML: body}); err != nil {
		return fmt.Errorf("%w: booking %s: %v", ErrSend, b.Code, err)
	}
	return nil
}

func newEmailData(b *domain.Booking) emailData {
	c := b.Composition()
	return emailData{
		Name:        b.CustomerName,
		Code:        b.Code,
		Tour:        TourName(b.TourType),
		Date:        b.TourDate.Format("02.01.2006"),
		Time:        b.TourTime.String(),
		Adults:      b.Adults,
		Children:    b.Children,
		Infants:     b.Infants,
		Wheelchairs: c.Wheelchairs(),
		Total:       FormatEuro(b.TotalCents),
		Payment:     domain.PaymentMethodLabel(b.EffectivePaymentMethod()),
		CancelHours: int(domain.RequiredCancelNotice(c).Hours()),
	}
}

func render(name string, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return buf.String(), nil
}

// TourName отображаемое название тура
func TourName(t domain.TourType) string {
	if name, ok := tourNames[t]; ok {
		return name
	}
	return string(t)
}

// FormatEuro форматирует центы в виде "12,50 €"
func FormatEuro(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d €", sign, cents/100, cents%100)
}
