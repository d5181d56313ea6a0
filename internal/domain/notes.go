package domain

import (
	"fmt"
	"strings"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentOnline:  "Online",
	PaymentCash:    "Bar",
	PaymentCard:    "Karte",
	PaymentInvoice: "Rechnung",
}

// PaymentMethodLabel human-readable label of a payment method
func PaymentMethodLabel(m PaymentMethod) string {
	if label, ok := paymentMethodLabels[m]; ok {
		return label
	}
	return string(m)
}

// ComposeNotes builds the human-readable notes shown to staff and in emails.
// The output depends only on the booking fields, in a fixed order.
// Seat accounting never reads it back.
func ComposeNotes(b *Booking) string {
	parts := make([]string, 0, 6)

	if b.Infants > 0 {
		parts = append(parts, fmt.Sprintf("Kleinkinder: %d", b.Infants))
	}
	if b.WheelchairAdults > 0 || b.WheelchairChildren > 0 {
		parts = append(parts, fmt.Sprintf("Rollstuhl: %d Erw., %d Kind", b.WheelchairAdults, b.WheelchairChildren))
	}
	parts = append(parts, "Zahlung: "+PaymentMethodLabel(b.EffectivePaymentMethod()))
	if b.InvoiceRequested {
		parts = append(parts, "Rechnung erwünscht")
	}
	if b.StaffedSale {
		parts = append(parts, "Vor-Ort-Verkauf")
	}
	if b.Remarks != nil && strings.TrimSpace(*b.Remarks) != "" {
		parts = append(parts, "Bemerkung: "+strings.TrimSpace(*b.Remarks))
	}

	notes := strings.Join(parts, " | ")

	if b.Invoice != nil {
		var sb strings.Builder
		sb.WriteString(notes)
		sb.WriteString("\n--- Rechnungsdaten ---")
		if b.Invoice.Company != "" {
			sb.WriteString("\nFirma: " + b.Invoice.Company)
		}
		sb.WriteString("\nName: " + b.Invoice.Name)
		sb.WriteString("\nStraße: " + b.Invoice.Street)
		sb.WriteString("\nOrt: " + strings.TrimSpace(b.Invoice.PostalCode+" "+b.Invoice.City))
		if b.Invoice.VatID != "" {
			sb.WriteString("\nUSt-IdNr.: " + b.Invoice.VatID)
		}
		notes = sb.String()
	}

	return notes
}
