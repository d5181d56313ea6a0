package get_statistics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JakobMartens/inselbahn/internal/service/statistics"
	"github.com/JakobMartens/inselbahn/internal/service/statistics/models"
	"github.com/JakobMartens/inselbahn/internal/testutil/memstore"
)

type stubService struct{}

func (stubService) Get(_ context.Context, from, to time.Time) (*models.StatisticsResponse, error) {
	if from.After(to) {
		return nil, statistics.ErrInvalidPeriod
	}
	return &models.StatisticsResponse{}, nil
}

func get(target string) int {
	rec := httptest.NewRecorder()
	NewHandler(stubService{}, memstore.Logger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec.Code
}

func TestHandle(t *testing.T) {
	assert.Equal(t, http.StatusOK, get("/api/v1/admin/statistics?from=2026-07-01&to=2026-07-31"))
	assert.Equal(t, http.StatusBadRequest, get("/api/v1/admin/statistics?from=2026-07-31&to=2026-07-01"))
	assert.Equal(t, http.StatusBadRequest, get("/api/v1/admin/statistics?from=2026-07-01"))
	assert.Equal(t, http.StatusBadRequest, get("/api/v1/admin/statistics"))
}
