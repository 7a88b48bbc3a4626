package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/srgjo27/cowork_booking/internal/platform/database"
)

type HoldBackend string

const (
	HoldBackendPostgres HoldBackend = "postgres"
	HoldBackendRedis    HoldBackend = "redis"
	HoldBackendMemory   HoldBackend = "memory"
)

type Config struct {
	HTTPAddr string
	DB       database.Config

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// RabbitMQURL is optional; without it no events are consumed or published.
	RabbitMQURL string

	HoldBackend     HoldBackend
	ResourceCatalog string
	Timezone        *time.Location

	PriorityHoldTTL  time.Duration
	FlexibleHoldTTL  time.Duration
	CalendarCacheTTL time.Duration
	SweepInterval    time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set take precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var errs []error
	cfg := Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		DB: database.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getenv("DB_NAME", "cowork_booking"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		RedisAddr:       getenv("REDIS_HOST", "localhost") + ":" + getenv("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		HoldBackend:     HoldBackend(strings.ToLower(getenv("HOLD_BACKEND", string(HoldBackendPostgres)))),
		ResourceCatalog: getenv("RESOURCE_CATALOG", "resources.yaml"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "text"),
	}

	cfg.RedisDB = envInt("REDIS_DB", 0, &errs)
	cfg.PriorityHoldTTL = envDur("PRIORITY_HOLD_TTL", 20*time.Minute, &errs)
	cfg.FlexibleHoldTTL = envDur("FLEXIBLE_HOLD_TTL", 5*time.Minute, &errs)
	cfg.CalendarCacheTTL = envDur("CALENDAR_CACHE_TTL", 30*time.Second, &errs)
	cfg.SweepInterval = envDur("SWEEP_INTERVAL", 24*time.Hour, &errs)

	loc, err := time.LoadLocation(getenv("BOOKING_TIMEZONE", "UTC"))
	if err != nil {
		errs = append(errs, fmt.Errorf("BOOKING_TIMEZONE: %w", err))
		loc = time.UTC
	}
	cfg.Timezone = loc

	switch cfg.HoldBackend {
	case HoldBackendPostgres, HoldBackendRedis, HoldBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("HOLD_BACKEND: unknown backend %q", cfg.HoldBackend))
	}

	return cfg, errors.Join(errs...)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int, errs *[]error) int {
	raw := getenv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func envDur(key string, def time.Duration, errs *[]error) time.Duration {
	raw := getenv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return def
	}
	return d
}
