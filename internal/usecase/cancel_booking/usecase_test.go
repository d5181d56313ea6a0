package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/infra/audit"
	"github.com/JakobMartens/inselbahn/internal/service/notifications"
	"github.com/JakobMartens/inselbahn/internal/testutil/memstore"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

var berlin = mustLoad("Europe/Berlin")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

type fixture struct {
	store   *memstore.Store
	clock   *memstore.Clock
	mailer  *memstore.Mailer
	audit   *memstore.Audit
	metrics *memstore.Metrics
	uc      *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:   memstore.New(),
		clock:   memstore.NewClock(time.Date(2026, 7, 1, 8, 0, 0, 0, berlin)),
		mailer:  &memstore.Mailer{},
		audit:   &memstore.Audit{},
		metrics: &memstore.Metrics{},
	}
	notifier := notifications.NewService(f.mailer, "walkin@inselbahn.local", memstore.Logger{})
	f.uc = NewUseCase(f.store, memstore.TxManager{}, notifier, f.audit, f.metrics, berlin, memstore.Logger{})
	f.uc.timeProvider = f.clock
	return f
}

// seed бронирование с отправлением через hoursAhead часов от часов фикстуры
func (f *fixture) seed(code string, adults, children int, hoursAhead int) *domain.Booking {
	start := f.clock.Now().Add(time.Duration(hoursAhead) * time.Hour)
	return f.store.SeedBooking(&domain.Booking{
		Code:          code,
		TourType:      domain.TourUnterland,
		TourDate:      time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		TourTime:      types.NewTimeString(start),
		CustomerName:  "Jan Hinrichs",
		CustomerEmail: "jan@example.com",
		Adults:        adults,
		Children:      children,
		Status:        domain.StatusConfirmed,
	})
}

func TestExecuteSelfService_NoticeRules(t *testing.T) {
	tests := []struct {
		name       string
		adults     int
		children   int
		hoursAhead int
		required   int // 0 = отмена разрешена
	}{
		{name: "large group 48h ahead rejected", adults: 6, children: 4, hoursAhead: 48, required: 72},
		{name: "small group 30h ahead accepted", adults: 2, children: 1, hoursAhead: 30},
		{name: "group of 8 exactly at 72h accepted", adults: 6, children: 2, hoursAhead: 72},
		{name: "group of 7 at 30h uses 24h rule", adults: 5, children: 2, hoursAhead: 30},
		{name: "small group 20h ahead rejected", adults: 1, hoursAhead: 20, required: 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seed("IBAAAA1111", tt.adults, tt.children, tt.hoursAhead)

			resp, err := f.uc.ExecuteSelfService(context.Background(), &SelfServiceRequest{
				Code: "IBAAAA1111", Email: "jan@example.com",
			})

			if tt.required > 0 {
				var windowErr *domain.CancellationWindowError
				require.ErrorAs(t, err, &windowErr)
				assert.Equal(t, tt.required, windowErr.RequiredHours)
				assert.ErrorIs(t, err, domain.ErrCancellationWindow)
				assert.True(t, f.store.Bookings()[0].IsConfirmed())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
			require.NotNil(t, resp.Booking.CancelledAt)
			assert.Equal(t, domain.StatusCancelled, f.store.Bookings()[0].Status)
		})
	}
}

func TestExecuteSelfService_SideEffects(t *testing.T) {
	f := newFixture(t)
	f.seed("IBAAAA1111", 2, 0, 30)

	_, err := f.uc.ExecuteSelfService(context.Background(), &SelfServiceRequest{
		Code: " ibaaaa1111 ", Email: "JAN@Example.com",
	})
	require.NoError(t, err)

	require.Len(t, f.mailer.Messages(), 1)
	assert.Equal(t, "Stornierung IBAAAA1111", f.mailer.Messages()[0].Subject)
	assert.Equal(t, []string{audit.ActionBookingCancelled}, f.audit.Actions())
	assert.Equal(t, 1, f.metrics.Count(EventBookingCancelled))
}

func TestExecuteSelfService_EmailMismatchIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.seed("IBAAAA1111", 2, 0, 30)

	_, err := f.uc.ExecuteSelfService(context.Background(), &SelfServiceRequest{
		Code: "IBAAAA1111", Email: "someone@example.com",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, f.store.Bookings()[0].IsConfirmed())
}

func TestExecuteSelfService_SecondCancelIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.seed("IBAAAA1111", 2, 0, 30)
	req := &SelfServiceRequest{Code: "IBAAAA1111", Email: "jan@example.com"}

	_, err := f.uc.ExecuteSelfService(context.Background(), req)
	require.NoError(t, err)

	_, err = f.uc.ExecuteSelfService(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, f.metrics.Count(EventBookingCancelled))
}

func TestExecuteSelfService_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ExecuteSelfService(context.Background(), &SelfServiceRequest{Email: "jan@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.ExecuteSelfService(context.Background(), &SelfServiceRequest{Code: "IBAAAA1111"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.ExecuteSelfService(context.Background(), &SelfServiceRequest{Code: "IB-AAA'--", Email: "jan@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExecuteAdmin(t *testing.T) {
	f := newFixture(t)
	// До отправления меньше часа, администратору срок не важен
	b := f.seed("IBAAAA1111", 10, 0, 0)

	resp, err := f.uc.ExecuteAdmin(context.Background(), &AdminRequest{BookingID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)

	_, err = f.uc.ExecuteAdmin(context.Background(), &AdminRequest{BookingID: b.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.ExecuteAdmin(context.Background(), &AdminRequest{BookingID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.ExecuteAdmin(context.Background(), &AdminRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExecuteAdmin_StoreFailure(t *testing.T) {
	f := newFixture(t)
	b := f.seed("IBAAAA1111", 2, 0, 30)
	f.store.Err = errors.New("connection reset")

	_, err := f.uc.ExecuteAdmin(context.Background(), &AdminRequest{BookingID: b.ID})

	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.Zero(t, f.metrics.Count(EventBookingCancelled))
}
