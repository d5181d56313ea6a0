package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/service/bookings/models"
	"github.com/JakobMartens/inselbahn/internal/testutil/memstore"
	"github.com/JakobMartens/inselbahn/pkg/ptr"
)

func seededService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	store.SeedBooking(&domain.Booking{
		Code: "IBAAAA1111", TourType: domain.TourUnterland,
		TourDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), TourTime: "10:00",
		CustomerEmail: "jan@example.com", Adults: 1, WheelchairAdults: 1, Status: domain.StatusConfirmed,
	})
	store.SeedBooking(&domain.Booking{
		Code: "IBBBBB2222", TourType: domain.TourPremium,
		TourDate: time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC), TourTime: "11:00",
		CustomerEmail: "eva@example.com", Adults: 2, Status: domain.StatusCancelled,
	})
	return NewService(store, memstore.Logger{}), store
}

func TestGetByCode(t *testing.T) {
	svc, _ := seededService(t)

	resp, err := svc.GetByCode(context.Background(), "ibaaaa1111", "JAN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "IBAAAA1111", resp.BookingCode)
	assert.Equal(t, 3, resp.Seats)
	assert.Equal(t, "online", resp.PaymentMethod)

	_, err = svc.GetByCode(context.Background(), "IBAAAA1111", "other@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByCode(context.Background(), "IBZZZZ9999", "jan@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByCode_MalformedCodeSkipsStore(t *testing.T) {
	svc, store := seededService(t)
	store.Err = errors.New("must not be called")

	_, err := svc.GetByCode(context.Background(), "IBAAAA11", "jan@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByCode(context.Background(), "IB AAAA 11", "jan@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByCode_StoreFailure(t *testing.T) {
	svc, store := seededService(t)
	store.Err = errors.New("timeout")

	_, err := svc.GetByCode(context.Background(), "IBAAAA1111", "jan@example.com")

	assert.ErrorIs(t, err, domain.ErrDependency)
}

func TestList(t *testing.T) {
	svc, _ := seededService(t)

	all, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)

	cancelled, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	require.Len(t, cancelled.Bookings, 1)
	assert.Equal(t, "IBBBBB2222", cancelled.Bookings[0].BookingCode)

	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	oneDay, err := svc.List(context.Background(), &models.ListBookingsRequest{From: &day, To: &day})
	require.NoError(t, err)
	assert.Len(t, oneDay.Bookings, 1)
}

func TestList_InvalidFilter(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("pending")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{TourType: ptr.Ptr("FERRY")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	from := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
