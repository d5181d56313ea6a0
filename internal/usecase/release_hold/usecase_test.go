package release_hold

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/testutil/memstore"
)

var tourDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

func TestExecute_DeletesHold(t *testing.T) {
	store := memstore.New()
	store.SeedHold(&domain.ReservationHold{
		SessionID: "s1", TourDate: tourDate, TourTime: "10:00", TourType: domain.TourUnterland,
		Seats: 2, ExpiresAt: time.Now().Add(time.Minute),
	})
	uc := NewUseCase(store, &memstore.Audit{}, memstore.Logger{})

	err := uc.Execute(context.Background(), &Request{SessionID: "s1", Date: tourDate, Time: "10:00"})

	require.NoError(t, err)
	assert.Equal(t, 0, store.HoldCount())
}

func TestExecute_MissingHoldIsNoop(t *testing.T) {
	uc := NewUseCase(memstore.New(), &memstore.Audit{}, memstore.Logger{})

	err := uc.Execute(context.Background(), &Request{SessionID: "s1", Date: tourDate, Time: "10:00"})

	assert.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	store := memstore.New()
	uc := NewUseCase(store, &memstore.Audit{}, memstore.Logger{})

	err := uc.Execute(context.Background(), &Request{Date: tourDate, Time: "10:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	store.Err = errors.New("connection refused")
	err = uc.Execute(context.Background(), &Request{SessionID: "s1", Date: tourDate, Time: "10:00"})
	assert.ErrorIs(t, err, domain.ErrDependency)
}
