package config_test

import (
	"testing"
	"time"

	"github.com/srgjo27/cowork_booking/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "HOLD_BACKEND", "PRIORITY_HOLD_TTL", "FLEXIBLE_HOLD_TTL", "BOOKING_TIMEZONE", "REDIS_HOST", "REDIS_PORT", "SWEEP_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, config.HoldBackendPostgres, cfg.HoldBackend)
	assert.Equal(t, 20*time.Minute, cfg.PriorityHoldTTL)
	assert.Equal(t, 5*time.Minute, cfg.FlexibleHoldTTL)
	assert.Equal(t, 24*time.Hour, cfg.SweepInterval)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, time.UTC, cfg.Timezone)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HOLD_BACKEND", "Redis")
	t.Setenv("PRIORITY_HOLD_TTL", "30m")
	t.Setenv("BOOKING_TIMEZONE", "Europe/Paris")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, config.HoldBackendRedis, cfg.HoldBackend)
	assert.Equal(t, 30*time.Minute, cfg.PriorityHoldTTL)
	assert.Equal(t, "Europe/Paris", cfg.Timezone.String())
	assert.Equal(t, "db.internal", cfg.DB.Host)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("HOLD_BACKEND", "etcd")
	t.Setenv("FLEXIBLE_HOLD_TTL", "five minutes")
	t.Setenv("REDIS_DB", "zero")

	_, err := config.FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOLD_BACKEND")
	assert.Contains(t, err.Error(), "FLEXIBLE_HOLD_TTL")
	assert.Contains(t, err.Error(), "REDIS_DB")
}
