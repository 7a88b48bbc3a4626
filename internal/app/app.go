// Package app wires configuration into repositories and services. Both
// binaries share it so they always see the same backends.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/cowork_booking/internal/adapter/messaging"
	"github.com/srgjo27/cowork_booking/internal/adapter/repository/catalog"
	"github.com/srgjo27/cowork_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/cowork_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/cowork_booking/internal/adapter/repository/redisstore"
	"github.com/srgjo27/cowork_booking/internal/core/ports"
	"github.com/srgjo27/cowork_booking/internal/core/services"
	"github.com/srgjo27/cowork_booking/internal/platform/clock"
	"github.com/srgjo27/cowork_booking/internal/platform/config"
	"github.com/srgjo27/cowork_booking/internal/platform/database"
)

type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Clock     clock.Clock
	DB        *sql.DB
	Redis     *redis.Client
	Publisher *messaging.Publisher

	Resources *memory.ResourceCatalog
	Holds     ports.HoldRepository
	Booking   *services.BookingService
	Sweeper   *services.MaintenanceSweeper
}

// New connects to Postgres and Redis and builds the services. Redis is
// optional unless it backs the holds; without it the calendar cache is off.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger, Clock: clock.NewSystem()}

	resources, err := catalog.LoadFile(cfg.ResourceCatalog)
	if err != nil {
		return nil, err
	}
	a.Resources = memory.NewResourceCatalog(resources...)
	logger.Info("resource catalog loaded", "path", cfg.ResourceCatalog, "resources", len(resources))

	db, err := database.NewPostgresDB(cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	a.DB = db

	if err := database.EnsureSchema(ctx, db); err != nil {
		a.Close()
		return nil, err
	}

	a.Redis = connectRedis(ctx, cfg, logger)
	switch cfg.HoldBackend {
	case config.HoldBackendRedis:
		if a.Redis == nil {
			a.Close()
			return nil, fmt.Errorf("hold backend redis: redis at %s unreachable", cfg.RedisAddr)
		}
		a.Holds = redisstore.NewHoldStore(a.Redis, a.Clock)
	case config.HoldBackendMemory:
		a.Holds = memory.NewHoldStore()
	default:
		a.Holds = postgres.NewHoldRepository(db)
	}
	logger.Info("hold backend selected", "backend", cfg.HoldBackend)

	intents := postgres.NewIntentRepository(db)
	orders := postgres.NewOrderRepository(db)
	ledger := services.NewCapacityLedger(postgres.NewReservationRepository(db))
	locks := services.NewLockManager(a.Holds, a.Clock,
		services.WithHoldTTLs(cfg.PriorityHoldTTL, cfg.FlexibleHoldTTL),
		services.WithLockLogger(logger))
	engine := services.NewAvailabilityEngine(a.Resources, ledger, locks, a.Clock, cfg.Timezone)

	opts := []services.BookingServiceOption{
		services.WithLogger(logger),
		services.WithClock(a.Clock),
		services.WithCalendarTTL(cfg.CalendarCacheTTL),
	}
	if cfg.RabbitMQURL != "" {
		a.Publisher = messaging.NewPublisher(cfg.RabbitMQURL, messaging.ReservationEventsQueue, logger)
		opts = append(opts, services.WithPublisher(a.Publisher))
	}

	a.Booking = services.NewBookingService(engine, locks, ledger, intents,
		postgres.NewMarkerRepository(db), orders, a.Redis, opts...)
	a.Sweeper = services.NewMaintenanceSweeper(a.Resources, ledger, locks, intents, orders, a.Redis, a.Clock, logger)
	return a, nil
}

func connectRedis(ctx context.Context, cfg config.Config, logger *slog.Logger) *redis.Client {
	logger.Info("connecting to redis", "addr", cfg.RedisAddr)
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, calendar cache disabled", "error", err)
		_ = client.Close()
		return nil
	}
	logger.Info("redis connected")
	return client
}

func (a *App) Close() {
	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
