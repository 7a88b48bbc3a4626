package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/cowork_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/ports"
	"github.com/srgjo27/cowork_booking/internal/core/services"
	"github.com/srgjo27/cowork_booking/internal/platform/clock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	clock        *clock.Fake
	resources    *memory.ResourceCatalog
	reservations *memory.ReservationStore
	holds        *memory.HoldStore
	intents      *memory.IntentStore
	markers      *memory.MarkerStore
	orders       *memory.OrderBook
	ledger       *services.CapacityLedger
	locks        *services.LockManager
	engine       *services.AvailabilityEngine
	booking      *services.BookingService
	sweeper      *services.MaintenanceSweeper
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	redis     *redis.Client
	publisher ports.EventPublisher
	intents   ports.IntentRepository
	orders    ports.OrderSystem
}

func withRedis(c *redis.Client) harnessOption {
	return func(cfg *harnessConfig) { cfg.redis = c }
}

func withPublisher(p ports.EventPublisher) harnessOption {
	return func(cfg *harnessConfig) { cfg.publisher = p }
}

func withIntents(r ports.IntentRepository) harnessOption {
	return func(cfg *harnessConfig) { cfg.intents = r }
}

func withOrders(o ports.OrderSystem) harnessOption {
	return func(cfg *harnessConfig) { cfg.orders = o }
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHarness(t *testing.T, resources []domain.Resource, opts ...harnessOption) *harness {
	t.Helper()
	cfg := &harnessConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	h := &harness{
		clock:        clock.NewFake(testNow),
		resources:    memory.NewResourceCatalog(resources...),
		reservations: memory.NewReservationStore(),
		holds:        memory.NewHoldStore(),
		intents:      memory.NewIntentStore(),
		markers:      memory.NewMarkerStore(),
		orders:       memory.NewOrderBook(),
	}
	var intents ports.IntentRepository = h.intents
	if cfg.intents != nil {
		intents = cfg.intents
	}
	var orders ports.OrderSystem = h.orders
	if cfg.orders != nil {
		orders = cfg.orders
	}

	logger := quietLogger()
	h.ledger = services.NewCapacityLedger(h.reservations)
	h.locks = services.NewLockManager(h.holds, h.clock, services.WithLockLogger(logger))
	h.engine = services.NewAvailabilityEngine(h.resources, h.ledger, h.locks, h.clock, time.UTC)

	bookingOpts := []services.BookingServiceOption{
		services.WithClock(h.clock),
		services.WithLogger(logger),
	}
	if cfg.publisher != nil {
		bookingOpts = append(bookingOpts, services.WithPublisher(cfg.publisher))
	}
	h.booking = services.NewBookingService(h.engine, h.locks, h.ledger, intents, h.markers, orders, cfg.redis, bookingOpts...)
	h.sweeper = services.NewMaintenanceSweeper(h.resources, h.ledger, h.locks, intents, orders, cfg.redis, h.clock, logger)
	return h
}

func (h *harness) acquire(t *testing.T, resourceID, start, end string) *services.AcquireHoldResponse {
	t.Helper()
	resp, err := h.booking.AcquireHold(context.Background(), services.AcquireHoldRequest{
		ResourceID: resourceID,
		Start:      start,
		End:        end,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func desk(capacity int) domain.Resource {
	return domain.Resource{ID: "desk-1", Name: "Open space", Capacity: capacity}
}
