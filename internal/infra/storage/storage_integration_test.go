//go:build integration

package storage_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/infra/lock/pglock"
	bookingRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/booking"
	holdRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/hold"
	"github.com/JakobMartens/inselbahn/internal/infra/storage/migrations"
	tourRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/tour"
	"github.com/JakobMartens/inselbahn/pkg/dbmetrics"
	"github.com/JakobMartens/inselbahn/pkg/txmanager"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

// startPostgres поднимает PostgreSQL в контейнере и применяет миграции
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "inselbahn",
				"POSTGRES_PASSWORD": "inselbahn",
				"POSTGRES_DB":       "inselbahn",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=inselbahn password=inselbahn dbname=inselbahn sslmode=disable",
		host, port.Port())
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, migrations.Apply(ctx, db))
	// повторное применение ничего не делает
	require.NoError(t, migrations.Apply(ctx, db))

	return db
}

func departure(date string) time.Time {
	d, _ := time.Parse(domain.DateFormat, date)
	return d
}

func newBooking(code string, seats int) *domain.Booking {
	return &domain.Booking{
		Code:          code,
		TourType:      domain.TourUnterland,
		TourDate:      departure("2026-07-02"),
		TourTime:      "10:00",
		CustomerName:  "Erika Mustermann",
		CustomerEmail: "erika@example.org",
		Adults:        seats,
		TotalCents:    int64(seats) * 1200,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
		PaymentMethod: domain.PaymentOnline,
	}
}

func TestTourRepository_SeededCatalog(t *testing.T) {
	db := dbmetrics.Wrap(startPostgres(t), nil, "test")
	repo := tourRepo.NewRepository(db)
	ctx := context.Background()

	cfg, err := repo.GetCurrent(ctx, domain.TourUnterland, departure("2026-07-02"))
	require.NoError(t, err)
	assert.True(t, cfg.HasSlot("14:30"))
	assert.True(t, cfg.IsChildFree("16:00"))

	_, err = repo.GetCurrent(ctx, domain.TourPremium, departure("2024-06-01"))
	assert.ErrorIs(t, err, tourRepo.ErrTourNotFound)

	versions, err := repo.ListByType(ctx, domain.TourPremium)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestBookingRepository_Lifecycle(t *testing.T) {
	db := dbmetrics.Wrap(startPostgres(t), nil, "test")
	repo := bookingRepo.NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking("IBAAAA2222", 3))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	_, err = repo.Create(ctx, newBooking("IBAAAA2222", 1))
	assert.ErrorIs(t, err, bookingRepo.ErrDuplicateCode)

	byCode, err := repo.GetByCode(ctx, "IBAAAA2222")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	confirmed, err := repo.ListConfirmedByDate(ctx, departure("2026-07-02"), domain.TourUnterland, "10:00")
	require.NoError(t, err)
	require.Len(t, confirmed, 1)

	require.NoError(t, repo.Cancel(ctx, created.ID, time.Now()))
	assert.ErrorIs(t, repo.Cancel(ctx, created.ID, time.Now()), bookingRepo.ErrBookingNotFound)

	confirmed, err = repo.ListConfirmedByDate(ctx, departure("2026-07-02"), domain.TourUnterland, "10:00")
	require.NoError(t, err)
	assert.Empty(t, confirmed)

	status := domain.StatusCancelled
	listed, err := repo.List(ctx, domain.BookingsFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.NotNil(t, listed[0].CancelledAt)
}

func TestHoldRepository_UpsertAndReap(t *testing.T) {
	db := dbmetrics.Wrap(startPostgres(t), nil, "test")
	repo := holdRepo.NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	hold := &domain.ReservationHold{
		SessionID: "s1",
		TourType:  domain.TourUnterland,
		TourDate:  departure("2026-07-02"),
		TourTime:  "10:00",
		Seats:     4,
		ExpiresAt: now.Add(10 * time.Minute),
	}
	_, err := repo.Upsert(ctx, hold)
	require.NoError(t, err)

	// повторный резерв заменяет количество мест
	hold.Seats = 2
	_, err = repo.Upsert(ctx, hold)
	require.NoError(t, err)

	live, err := repo.GetLive(ctx, "s1", domain.TourUnterland, departure("2026-07-02"), "10:00", now)
	require.NoError(t, err)
	assert.Equal(t, 2, live.Seats)

	_, err = repo.GetLive(ctx, "s1", domain.TourPremium, departure("2026-07-02"), "10:00", now)
	assert.ErrorIs(t, err, holdRepo.ErrHoldNotFound)

	_, err = repo.Upsert(ctx, &domain.ReservationHold{
		SessionID: "s2",
		TourType:  domain.TourUnterland,
		TourDate:  departure("2026-07-02"),
		TourTime:  "10:00",
		Seats:     3,
		ExpiresAt: now.Add(-time.Minute),
	})
	require.NoError(t, err)

	holds, err := repo.ListLive(ctx, departure("2026-07-02"), domain.TourUnterland, "", now)
	require.NoError(t, err)
	assert.Len(t, holds, 1)

	deleted, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	require.NoError(t, repo.Delete(ctx, "s1", departure("2026-07-02"), "10:00"))
	_, err = repo.GetLive(ctx, "s1", domain.TourUnterland, departure("2026-07-02"), "10:00", now)
	assert.ErrorIs(t, err, holdRepo.ErrHoldNotFound)
}

func TestPgLockGuard_SerializesSlot(t *testing.T) {
	db := dbmetrics.Wrap(startPostgres(t), nil, "test")
	repo := bookingRepo.NewRepository(db)
	guard := pglock.NewGuard(db, txmanager.NewTransactionManager(db))
	ctx := context.Background()

	slot := domain.NewSlot(departure("2026-07-02"), types.TimeString("10:00"), domain.TourUnterland)
	const ceiling = 10

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = guard.Do(ctx, slot, func(txCtx context.Context) error {
				existing, err := repo.ListConfirmedByDate(txCtx, slot.Date, slot.TourType, slot.Time.String())
				if err != nil {
					return err
				}
				if err := domain.CheckCapacity(domain.ChannelOnline, domain.Occupancy(slot, existing), 3, ceiling); err != nil {
					return err
				}
				_, err = repo.Create(txCtx, newBooking(fmt.Sprintf("IBLOCK%04d", i), 3))
				return err
			})
		}(i)
	}
	wg.Wait()

	confirmed, err := repo.ListConfirmedByDate(ctx, slot.Date, slot.TourType, slot.Time.String())
	require.NoError(t, err)
	assert.Equal(t, 9, domain.Occupancy(slot, confirmed))
}
