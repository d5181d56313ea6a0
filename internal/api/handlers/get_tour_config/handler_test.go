package get_tour_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/service/catalog/models"
	"github.com/JakobMartens/inselbahn/internal/testutil/memstore"
)

type stubService struct {
	gotType string
	gotDate time.Time
}

func (s *stubService) GetCurrent(_ context.Context, rawType string, date time.Time) (*models.TourConfigResponse, error) {
	s.gotType, s.gotDate = rawType, date
	if rawType != "UNTERLAND" {
		return nil, domain.ErrCatalogNotFound
	}
	return &models.TourConfigResponse{TourType: rawType}, nil
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/tours/{tourType}/config", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, time.UTC, memstore.Logger{})

	rec := get(h, "/api/v1/tours/UNTERLAND/config?date=2026-08-15")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15, svc.gotDate.Day())

	assert.Equal(t, http.StatusOK, get(h, "/api/v1/tours/UNTERLAND/config").Code)
	assert.False(t, svc.gotDate.IsZero())

	assert.Equal(t, http.StatusNotFound, get(h, "/api/v1/tours/PREMIUM/config?date=2026-08-15").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/tours/UNTERLAND/config?date=15.08.").Code)
}
