package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/testutil/memstore"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

func newCatalog(t *testing.T) *Service {
	t.Helper()
	store := memstore.New()
	until := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	store.AddTour(&domain.TourConfig{
		TourType: domain.TourUnterland, TimeSlots: []types.TimeString{"10:00"},
		AdultPriceCents: 1100, ChildPriceCents: 550,
		ValidFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), ValidUntil: &until,
	})
	store.AddTour(&domain.TourConfig{
		TourType: domain.TourUnterland, TimeSlots: []types.TimeString{"10:00", "16:00"},
		AdultPriceCents: 1200, ChildPriceCents: 600, FreeChildTimes: []types.TimeString{"16:00"},
		ValidFrom: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	policy := domain.NewCapacityPolicy(map[domain.TourType]domain.Ceiling{
		domain.TourUnterland: {Online: 36, Staffed: 45},
		domain.TourPremium:   {Online: 20, Staffed: 24},
	})
	return NewService(store, policy, memstore.Logger{})
}

func TestGetCurrent_PicksVersionByDate(t *testing.T) {
	svc := newCatalog(t)

	spring, err := svc.GetCurrent(context.Background(), "unterland", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1100), spring.AdultPriceCents)
	require.NotNil(t, spring.ValidUntil)
	assert.Equal(t, "2026-05-31", *spring.ValidUntil)

	summer, err := svc.GetCurrent(context.Background(), "UNTERLAND", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "16:00"}, summer.TimeSlots)
	assert.Equal(t, []string{"16:00"}, summer.FreeChildTimes)
	assert.Equal(t, 36, summer.OnlineCapacity)
	assert.Equal(t, 45, summer.StaffedCapacity)
}

func TestGetCurrent_Errors(t *testing.T) {
	svc := newCatalog(t)

	_, err := svc.GetCurrent(context.Background(), "PREMIUM", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)

	_, err = svc.GetCurrent(context.Background(), "UNTERLAND", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)

	_, err = svc.GetCurrent(context.Background(), "FERRY", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GetCurrent(context.Background(), "UNTERLAND", time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListVersions(t *testing.T) {
	svc := newCatalog(t)

	resp, err := svc.ListVersions(context.Background(), "UNTERLAND", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, resp.Configs, 2)
	assert.Equal(t, "2026-06-01", resp.Configs[0].ValidFrom)
	assert.True(t, resp.Configs[0].Current)
	assert.False(t, resp.Configs[1].Current)

	spring, err := svc.ListVersions(context.Background(), "UNTERLAND", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, spring.Configs[0].Current)
	assert.True(t, spring.Configs[1].Current)

	// До первой версии действующей нет
	winter, err := svc.ListVersions(context.Background(), "UNTERLAND", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	for _, cfg := range winter.Configs {
		assert.False(t, cfg.Current)
	}
}
