package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

type HoldStore struct {
	mu      sync.RWMutex
	byToken map[string]domain.ProvisionalHold
}

func NewHoldStore() *HoldStore {
	return &HoldStore{byToken: make(map[string]domain.ProvisionalHold)}
}

func (s *HoldStore) ListByResource(_ context.Context, resourceID string) ([]domain.ProvisionalHold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ProvisionalHold
	for _, h := range s.byToken {
		if h.ResourceID == resourceID {
			out = append(out, h)
		}
	}
	sortHolds(out)
	return out, nil
}

func (s *HoldStore) ListAll(_ context.Context) ([]domain.ProvisionalHold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ProvisionalHold, 0, len(s.byToken))
	for _, h := range s.byToken {
		out = append(out, h)
	}
	sortHolds(out)
	return out, nil
}

func (s *HoldStore) GetByToken(_ context.Context, token string) (*domain.ProvisionalHold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byToken[token]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (s *HoldStore) Save(_ context.Context, hold *domain.ProvisionalHold) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[hold.Token] = *hold
	return nil
}

func (s *HoldStore) Delete(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byToken[token]
	delete(s.byToken, token)
	return ok, nil
}

func (s *HoldStore) DeleteExpired(_ context.Context, resourceID string, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for token, h := range s.byToken {
		if resourceID != "" && h.ResourceID != resourceID {
			continue
		}
		if !h.IsLive(now) {
			delete(s.byToken, token)
			n++
		}
	}
	return n, nil
}

// RunEviction deletes expired holds every interval until ctx is cancelled.
func (s *HoldStore) RunEviction(ctx context.Context, interval time.Duration, now func() time.Time) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.DeleteExpired(ctx, "", now())
		}
	}
}

func sortHolds(holds []domain.ProvisionalHold) {
	sort.Slice(holds, func(i, j int) bool {
		return holds[i].CreatedAt.Before(holds[j].CreatedAt)
	})
}
