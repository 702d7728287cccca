package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pousada/internal/config"
	"pousada/internal/events"
	"pousada/internal/models"
	"pousada/internal/service"
	"pousada/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg config.APIConfig) *HTTPServer {
	t.Helper()
	data := store.NewCollections(store.NewMemoryStore())
	bus := events.NewEventBus()
	logger := zerolog.New(io.Discard)

	guests := service.NewGuestService(data, bus, &logger)
	rooms := service.NewRoomService(data, bus, &logger)
	bookings := service.NewBookingService(data, bus, nil, &logger)
	dashboard := service.NewDashboardService(data, &logger)

	return NewHTTPServer(cfg, guests, rooms, bookings, dashboard, &logger)
}

func doJSON(t *testing.T, srv *HTTPServer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestHTTPServer_GuestEndpoints(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/guests", models.GuestInput{
		Name: "Maria Silva", TaxID: "111", Phone: "555", Email: "maria@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Guest](t, rec)
	require.NotEmpty(t, created.ID)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/guests?search=maria", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[models.GuestPage](t, rec)
	require.Len(t, page.Guests, 1)
	assert.Equal(t, 1, page.Pagination.Total)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/guests/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPatch, "/api/v1/guests/"+created.ID, map[string]string{"phone": "555-9999"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Guest](t, rec)
	assert.Equal(t, "555-9999", updated.Phone)

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/guests/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/guests/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPServer_ErrorMapping(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})

	t.Run("validation maps to 400", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/v1/guests", models.GuestInput{Name: "No Contact"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/v1/bookings/missing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/v1/rooms", models.RoomInput{Number: "101"})
		require.Equal(t, http.StatusCreated, rec.Code)
		rec = doJSON(t, srv, http.MethodPost, "/api/v1/rooms", models.RoomInput{Number: "101"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/guests", bytes.NewReader([]byte("not json")))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported method maps to 405", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodDelete, "/api/v1/dashboard/stats", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHTTPServer_BookingFlow(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})

	guest := decode[models.Guest](t, doJSON(t, srv, http.MethodPost, "/api/v1/guests", models.GuestInput{
		Name: "Maria", TaxID: "111", Phone: "555", Email: "maria@example.com",
	}))
	room := decode[models.Room](t, doJSON(t, srv, http.MethodPost, "/api/v1/rooms", models.RoomInput{Number: "101"}))

	checkIn := time.Now().AddDate(0, 0, 1)
	checkOut := time.Now().AddDate(0, 0, 3)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/bookings", models.BookingInput{
		GuestID:  guest.ID,
		RoomID:   room.ID,
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Rate:     ptr(100.0),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	booking := decode[models.BookingDetails](t, rec)
	assert.Equal(t, 200.0, booking.Total)
	require.NotNil(t, booking.Guest)
	assert.Equal(t, "Maria", booking.Guest.Name)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/bookings?status=CONFIRMED", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decode[map[string][]models.BookingDetails](t, rec)
	assert.Len(t, listing["bookings"], 1)

	// The booked range no longer shows the room as available.
	path := fmt.Sprintf("/api/v1/rooms/available?checkIn=%s&checkOut=%s", futureDate(1), futureDate(3))
	rec = doJSON(t, srv, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	available := decode[map[string][]models.Room](t, rec)
	assert.Empty(t, available["rooms"])

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/bookings/"+booking.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHTTPServer_RoomFlags(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})
	room := decode[models.Room](t, doJSON(t, srv, http.MethodPost, "/api/v1/rooms", models.RoomInput{Number: "101"}))

	rec := doJSON(t, srv, http.MethodPatch, "/api/v1/rooms/"+room.ID+"/flags", map[string]bool{"blocked": true})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Room](t, rec)
	assert.Equal(t, models.RoomBlocked, updated.Status)
}

func TestHTTPServer_AvailableRequiresDates(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/rooms/available", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/rooms/available?checkIn=bogus&checkOut="+futureDate(3), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPServer_DashboardStats(t *testing.T) {
	srv := newTestServer(t, config.APIConfig{})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.DashboardStats](t, rec)
	assert.Zero(t, stats.Totals.Guests)
	assert.NotNil(t, stats.BookingsByStatus)
}

func authConfig() config.APIConfig {
	return config.APIConfig{
		Enabled: true,
		Auth: config.APIAuthConfig{
			Enabled: true,
			APIKeys: []config.APIClientKey{
				{Key: "key-1", Extra: "extra-1", Name: "frontdesk"},
				{Key: "key-ro", Extra: "extra-ro", Name: "readonly", Permissions: []string{"read:rooms", "read:dashboard"}},
			},
		},
	}
}

func TestHTTPAuth(t *testing.T) {
	srv := newTestServer(t, authConfig())

	request := func(key, extra, method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if key != "" {
			req.Header.Set("x-api-key", key)
		}
		if extra != "" {
			req.Header.Set("x-api-extra", extra)
		}
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing headers", func(t *testing.T) {
		rec := request("", "", http.MethodGet, "/api/v1/rooms")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown key", func(t *testing.T) {
		rec := request("nope", "extra-1", http.MethodGet, "/api/v1/rooms")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong extra", func(t *testing.T) {
		rec := request("key-1", "wrong", http.MethodGet, "/api/v1/rooms")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid key without permission list sees everything", func(t *testing.T) {
		rec := request("key-1", "extra-1", http.MethodGet, "/api/v1/rooms")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("scoped key is limited to its permissions", func(t *testing.T) {
		rec := request("key-ro", "extra-ro", http.MethodGet, "/api/v1/rooms")
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = request("key-ro", "extra-ro", http.MethodGet, "/api/v1/guests")
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = request("key-ro", "extra-ro", http.MethodPost, "/api/v1/rooms")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHTTPAuth_RateLimit(t *testing.T) {
	cfg := authConfig()
	cfg.RateLimit = config.APIRateLimitConfig{RPS: 1, Burst: 2}
	srv := newTestServer(t, cfg)

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
		req.Header.Set("x-api-key", "key-1")
		req.Header.Set("x-api-extra", "extra-1")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func ptr[T any](v T) *T {
	return &v
}
