package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/cowork_booking/internal/adapter/handler"
	"github.com/srgjo27/cowork_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/services"
	"github.com/srgjo27/cowork_booking/internal/platform/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	clk := clock.NewFake(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	resources := memory.NewResourceCatalog(
		domain.Resource{ID: "room-a", Name: "Room A", Capacity: 1},
		domain.Resource{ID: "open", Name: "Open space", Capacity: 10, Blackouts: []domain.BlackoutEntry{
			{Date: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Reason: "maintenance"},
		}},
	)
	intents := memory.NewIntentStore()
	orders := memory.NewOrderBook()

	ledger := services.NewCapacityLedger(memory.NewReservationStore())
	locks := services.NewLockManager(memory.NewHoldStore(), clk)
	engine := services.NewAvailabilityEngine(resources, ledger, locks, clk, time.UTC)
	svc := services.NewBookingService(engine, locks, ledger, intents, memory.NewMarkerStore(), orders, nil,
		services.WithClock(clk))
	sweeper := services.NewMaintenanceSweeper(resources, ledger, locks, intents, orders, nil, clk, nil)

	e := echo.New()
	handler.RegisterRoutes(e, handler.NewBookingHandler(svc, nil), handler.NewAdminHandler(sweeper, nil))
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	rec := do(newServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHoldLifecycle(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/holds", `{"resource_id":"room-a","start":"2025-03-10","end":"2025-03-11"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	rec = do(e, http.MethodGet, "/resources/room-a/availability?start=2025-03-09&end=2025-03-12", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "2025-03-10", decode(t, rec)["first_blocked_date"])

	rec = do(e, http.MethodPost, "/holds/"+token+"/verify", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["ok"])

	rec = do(e, http.MethodPost, "/reservations/confirm", `{"token":"`+token+`","external_ref":"order-42"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "CREATED", decode(t, rec)["outcome"])

	rec = do(e, http.MethodPost, "/reservations/confirm", `{"token":"`+token+`","external_ref":"order-42"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DUPLICATE", decode(t, rec)["outcome"])

	rec = do(e, http.MethodPost, "/reservations/void", `{"external_ref":"order-42"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["removed"])

	rec = do(e, http.MethodGet, "/resources/room-a/availability?start=2025-03-10&end=2025-03-11", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["ok"])
}

func TestReleaseHold(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/holds", `{"resource_id":"room-a","start":"2025-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	token := decode(t, rec)["token"].(string)

	rec = do(e, http.MethodDelete, "/holds/"+token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodPost, "/holds/"+token+"/verify", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	e := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"lead time", http.MethodGet, "/resources/room-a/availability?start=2025-01-01", "", http.StatusUnprocessableEntity},
		{"reversed range", http.MethodGet, "/resources/room-a/availability?start=2025-03-10&end=2025-03-01", "", http.StatusBadRequest},
		{"bad quantity", http.MethodGet, "/resources/room-a/availability?start=2025-03-10&quantity=zero", "", http.StatusBadRequest},
		{"unknown resource", http.MethodGet, "/resources/nope/availability?start=2025-03-10", "", http.StatusNotFound},
		{"blackout", http.MethodPost, "/holds", `{"resource_id":"open","start":"2025-03-14","end":"2025-03-16"}`, http.StatusConflict},
		{"missing fields", http.MethodPost, "/holds", `{"resource_id":"open"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/holds", `{`, http.StatusBadRequest},
		{"nothing to confirm", http.MethodPost, "/reservations/confirm", `{"token":"x","external_ref":"order-1"}`, http.StatusNotFound},
		{"confirm without ref", http.MethodPost, "/reservations/confirm", `{"token":"x"}`, http.StatusBadRequest},
		{"void without ref", http.MethodPost, "/reservations/void", `{}`, http.StatusBadRequest},
		{"bad month", http.MethodGet, "/resources/open/calendar?month=2025-13", "", http.StatusBadRequest},
		{"rebuild unknown", http.MethodPost, "/admin/resources/nope/rebuild", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestCalendar(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodGet, "/resources/open/calendar?month=2025-03", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	days := body["days"].([]any)
	require.Len(t, days, 31)
	blackout := days[14].(map[string]any)
	assert.Equal(t, "2025-03-15", blackout["date"])
	assert.Equal(t, "blocked", blackout["status"])
	assert.Equal(t, "maintenance", blackout["reason"])
}

func TestAdminSweep(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/admin/sweep", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec), "report")

	rec = do(e, http.MethodPost, "/admin/resources/open/rebuild", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["entries"])
}
