package domain

import "github.com/JakobMartens/inselbahn/pkg/types"

// Price total in cents. Wheelchair passengers pay the regular price of their
// age class, children ride free on the configured departures, infants are free.
func Price(cfg *TourConfig, t types.TimeString, c Composition) int64 {
	total := int64(c.Adults) * cfg.AdultPriceCents
	if !cfg.IsChildFree(t) {
		total += int64(c.Children) * cfg.ChildPriceCents
	}
	return total
}

// ResolvePaymentStatus explicit override wins. Otherwise staffed cash or card
// sales are paid on the spot, invoice sales and all online sales stay pending.
func ResolvePaymentStatus(channel Channel, method PaymentMethod, override *PaymentStatus) PaymentStatus {
	if override != nil && *override != "" {
		return *override
	}
	if channel == ChannelStaffed && (method == PaymentCash || method == PaymentCard) {
		return PaymentPaid
	}
	return PaymentPending
}
