package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/ports"
	"github.com/srgjo27/cowork_booking/internal/platform/clock"
)

const (
	DefaultPriorityTTL = 20 * time.Minute
	DefaultFlexibleTTL = 5 * time.Minute
)

// LockManager stores provisional holds. It never checks availability;
// that is the AvailabilityEngine's job.
type LockManager struct {
	repo        ports.HoldRepository
	clock       clock.Clock
	logger      *slog.Logger
	priorityTTL time.Duration
	flexibleTTL time.Duration
}

type LockManagerOption func(*LockManager)

// WithHoldTTLs overrides the hold durations for single-seat and shared resources.
func WithHoldTTLs(priority, flexible time.Duration) LockManagerOption {
	return func(m *LockManager) {
		if priority > 0 {
			m.priorityTTL = priority
		}
		if flexible > 0 {
			m.flexibleTTL = flexible
		}
	}
}

func WithLockLogger(logger *slog.Logger) LockManagerOption {
	return func(m *LockManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewLockManager(repo ports.HoldRepository, clk clock.Clock, opts ...LockManagerOption) *LockManager {
	m := &LockManager{
		repo:        repo,
		clock:       clk,
		logger:      slog.Default(),
		priorityTTL: DefaultPriorityTTL,
		flexibleTTL: DefaultFlexibleTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTLFor returns the priority TTL for single-unit resources and the flexible
// TTL for shared ones.
func (m *LockManager) TTLFor(resource *domain.Resource) time.Duration {
	if resource.EffectiveCapacity() == 1 {
		return m.priorityTTL
	}
	return m.flexibleTTL
}

func (m *LockManager) ListLive(ctx context.Context, resourceID string, now time.Time) ([]domain.ProvisionalHold, error) {
	holds, err := m.repo.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, domain.NewPersistenceError("locks.list", err)
	}
	live := make([]domain.ProvisionalHold, 0, len(holds))
	for _, h := range holds {
		if h.IsLive(now) {
			live = append(live, h)
		}
	}
	return live, nil
}

func (m *LockManager) UnitsOn(ctx context.Context, resourceID string, date, now time.Time) (int, error) {
	live, err := m.ListLive(ctx, resourceID, now)
	if err != nil {
		return 0, err
	}
	return holdUnitsOn(live, date, ""), nil
}

// Acquire stores a one-unit hold for token. Expired holds of the same
// resource are evicted on the way; a failed eviction is only logged.
func (m *LockManager) Acquire(ctx context.Context, resourceID string, start, end time.Time, token string, ttl time.Duration) (*domain.ProvisionalHold, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	now := m.clock.Now()
	if _, err := m.repo.DeleteExpired(ctx, resourceID, now); err != nil {
		m.logger.Warn("evicting expired holds failed", "resource_id", resourceID, "error", err)
	}

	hold := &domain.ProvisionalHold{
		Token:      token,
		ResourceID: resourceID,
		Start:      domain.Day(start),
		End:        domain.Day(end),
		UnitsHeld:  1,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}
	if err := m.repo.Save(ctx, hold); err != nil {
		return nil, domain.NewPersistenceError("locks.acquire", err)
	}
	return hold, nil
}

// Release deletes the hold for token. Releasing an unknown token is a no-op.
func (m *LockManager) Release(ctx context.Context, token string) (bool, error) {
	removed, err := m.repo.Delete(ctx, token)
	if err != nil {
		return false, domain.NewPersistenceError("locks.release", err)
	}
	return removed, nil
}

func (m *LockManager) Get(ctx context.Context, token string) (*domain.ProvisionalHold, error) {
	hold, err := m.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, domain.NewPersistenceError("locks.get", err)
	}
	return hold, nil
}

func (m *LockManager) ListAllLive(ctx context.Context, now time.Time) ([]domain.ProvisionalHold, error) {
	holds, err := m.repo.ListAll(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("locks.list_all", err)
	}
	live := make([]domain.ProvisionalHold, 0, len(holds))
	for _, h := range holds {
		if h.IsLive(now) {
			live = append(live, h)
		}
	}
	return live, nil
}

// EvictExpired removes dead holds; an empty resourceID sweeps every resource.
func (m *LockManager) EvictExpired(ctx context.Context, resourceID string, now time.Time) (int64, error) {
	n, err := m.repo.DeleteExpired(ctx, resourceID, now)
	if err != nil {
		return 0, domain.NewPersistenceError("locks.evict", err)
	}
	return n, nil
}

func holdUnitsOn(holds []domain.ProvisionalHold, date time.Time, excludeToken string) int {
	total := 0
	for i := range holds {
		if excludeToken != "" && holds[i].Token == excludeToken {
			continue
		}
		if holds[i].Covers(date) {
			total += holds[i].Units()
		}
	}
	return total
}
