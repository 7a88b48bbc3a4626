package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

const DefaultCalendarTTL = 30 * time.Second

// calendarCache keeps rendered month views in Redis. A nil client disables it.
type calendarCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func calendarKey(resourceID string, month time.Time) string {
	return fmt.Sprintf("calendar:%s:%s", resourceID, month.Format("2006-01"))
}

func (c *calendarCache) get(ctx context.Context, resourceID string, month time.Time) (*domain.MonthView, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, calendarKey(resourceID, month)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("calendar cache read failed", "resource_id", resourceID, "error", err)
		}
		return nil, false
	}
	var view domain.MonthView
	if err := json.Unmarshal(raw, &view); err != nil {
		c.logger.Warn("calendar cache entry unreadable", "resource_id", resourceID, "error", err)
		return nil, false
	}
	return &view, true
}

// set stores view until its ValidUntil, never longer than the cache TTL.
func (c *calendarCache) set(ctx context.Context, month time.Time, view *domain.MonthView, now time.Time) {
	if c.client == nil {
		return
	}
	ttl := c.ttl
	if !view.ValidUntil.IsZero() {
		if left := view.ValidUntil.Sub(now); left < ttl {
			ttl = left
		}
	}
	if ttl < time.Millisecond {
		return
	}
	body, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, calendarKey(view.ResourceID, month), body, ttl).Err(); err != nil {
		c.logger.Warn("calendar cache write failed", "resource_id", view.ResourceID, "error", err)
	}
}

// invalidate drops the cached months overlapped by [start, end].
func (c *calendarCache) invalidate(ctx context.Context, resourceID string, start, end time.Time) {
	if c.client == nil {
		return
	}
	months := domain.MonthsTouched(start, end)
	keys := make([]string, 0, len(months))
	for _, m := range months {
		keys = append(keys, calendarKey(resourceID, m))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("calendar cache invalidation failed", "resource_id", resourceID, "error", err)
	}
}

func (c *calendarCache) invalidateResource(ctx context.Context, resourceID string) {
	if c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, fmt.Sprintf("calendar:%s:*", resourceID), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("calendar cache scan failed", "resource_id", resourceID, "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("calendar cache invalidation failed", "resource_id", resourceID, "error", err)
	}
}
