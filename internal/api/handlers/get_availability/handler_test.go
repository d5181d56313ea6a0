package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/testutil/memstore"
	getAvailability "github.com/JakobMartens/inselbahn/internal/usecase/get_availability"
)

type stubUseCase struct {
	got  *getAvailability.Request
	resp *getAvailability.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/tours/{tourType}/availability", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailability.Response{
		TourType: domain.TourUnterland,
		Date:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Capacity: 36,
		Slots: []getAvailability.SlotAvailability{
			{Time: "10:00", Remaining: 0, Occupied: 36, WindowOpen: true},
			{Time: "14:30", Remaining: 12, Occupied: 20, Held: 4, WindowOpen: true, WheelchairEligible: true},
		},
	}}

	rec := serve(NewHandler(uc, memstore.Logger{}), "/api/v1/tours/unterland/availability?date=2026-07-01&sessionId=s1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.TourUnterland, uc.got.TourType)
	assert.Equal(t, "s1", uc.got.SessionID)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 2)
	assert.False(t, body.Slots[0].Bookable)
	assert.True(t, body.Slots[1].Bookable)
	assert.Equal(t, 12, body.Slots[1].Remaining)
}

func TestHandle_BadInput(t *testing.T) {
	h := NewHandler(&stubUseCase{}, memstore.Logger{})

	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/tours/FERRY/availability?date=2026-07-01").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/tours/UNTERLAND/availability").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/tours/UNTERLAND/availability?date=01.07.2026").Code)
}

func TestHandle_CatalogNotFound(t *testing.T) {
	h := NewHandler(&stubUseCase{err: domain.ErrCatalogNotFound}, memstore.Logger{})

	rec := serve(h, "/api/v1/tours/PREMIUM/availability?date=2026-07-01")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
