package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/testutil/memstore"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

func day(d int) time.Time {
	return time.Date(2026, 7, d, 0, 0, 0, 0, time.UTC)
}

func newService(store *memstore.Store) *Service {
	policy := domain.NewCapacityPolicy(map[domain.TourType]domain.Ceiling{
		domain.TourUnterland: {Online: 36, Staffed: 45},
		domain.TourPremium:   {Online: 20, Staffed: 24},
	})
	return NewService(store, policy, memstore.Logger{})
}

func seed(store *memstore.Store, tourType domain.TourType, date time.Time, at types.TimeString, adults, children int, total int64, method domain.PaymentMethod) {
	store.SeedBooking(&domain.Booking{
		TourType: tourType, TourDate: date, TourTime: at,
		Adults: adults, Children: children, TotalCents: total,
		PaymentMethod: method, Status: domain.StatusConfirmed,
	})
}

func TestGet_OccupancyRate(t *testing.T) {
	store := memstore.New()
	// 120 пассажиров на трех отправлениях 10:00
	seed(store, domain.TourUnterland, day(1), "10:00", 30, 10, 42000, domain.PaymentCash)
	seed(store, domain.TourUnterland, day(2), "10:00", 20, 0, 24000, "")
	seed(store, domain.TourUnterland, day(2), "10:00", 15, 5, 21000, domain.PaymentCard)
	seed(store, domain.TourUnterland, day(3), "10:00", 40, 0, 48000, domain.PaymentInvoice)

	resp, err := newService(store).Get(context.Background(), day(1), day(31))
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	slot := resp.Slots[0]
	assert.Equal(t, 3, slot.Occurrences)
	assert.Equal(t, 120, slot.Passengers)
	assert.Equal(t, 45, slot.StaffedCapacity)
	assert.InDelta(t, 120.0/135.0, slot.OccupancyRate, 1e-9)
	assert.Equal(t, 88.9, slot.OccupancyRatePercent)
	assert.InDelta(t, 40.0, slot.AvgPassengers, 1e-9)
	assert.InDelta(t, 30.0, slot.AvgBookingSize, 1e-9)
}

func TestGet_Breakdowns(t *testing.T) {
	store := memstore.New()
	seed(store, domain.TourUnterland, day(1), "10:00", 2, 1, 3000, "")
	seed(store, domain.TourPremium, day(1), "11:00", 2, 0, 4800, domain.PaymentCash)
	seed(store, domain.TourPremium, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), "15:00", 1, 0, 2400, domain.PaymentCash)
	store.SeedBooking(&domain.Booking{
		TourType: domain.TourUnterland, TourDate: day(1), TourTime: "10:00",
		Adults: 10, TotalCents: 12000, Status: domain.StatusCancelled,
	})

	resp, err := newService(store).Get(context.Background(), day(1), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Totals.Bookings)
	assert.Equal(t, 6, resp.Totals.Passengers)
	assert.Equal(t, int64(10200), resp.Totals.RevenueCents)

	assert.Equal(t, 1, resp.ByTourType["UNTERLAND"].Bookings)
	assert.Equal(t, 2, resp.ByTourType["PREMIUM"].Bookings)

	// Без способа оплаты бронирование считается онлайн
	assert.Equal(t, 1, resp.ByPaymentMethod["online"].Bookings)
	assert.Equal(t, 2, resp.ByPaymentMethod["cash"].Bookings)

	require.Len(t, resp.ByMonth, 2)
	assert.Equal(t, "2026-07", resp.ByMonth[0].Period)
	assert.Equal(t, 2, resp.ByMonth[0].Bookings)
	assert.Equal(t, "2026-08", resp.ByMonth[1].Period)

	require.Len(t, resp.ByDay, 2)
	assert.Equal(t, "2026-07-01", resp.ByDay[0].Period)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, "PREMIUM", resp.Slots[0].TourType)
	assert.Equal(t, "11:00", resp.Slots[0].Time)
}

func TestGet_EmptyPeriod(t *testing.T) {
	resp, err := newService(memstore.New()).Get(context.Background(), day(1), day(2))
	require.NoError(t, err)

	assert.Zero(t, resp.Totals.Bookings)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.ByMonth)
}

func TestGet_Errors(t *testing.T) {
	store := memstore.New()
	svc := newService(store)

	_, err := svc.Get(context.Background(), time.Time{}, day(2))
	assert.ErrorIs(t, err, ErrPeriodRequired)

	_, err = svc.Get(context.Background(), day(3), day(2))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	store.Err = errors.New("statement timeout")
	_, err = svc.Get(context.Background(), day(1), day(2))
	assert.ErrorIs(t, err, domain.ErrDependency)
}
