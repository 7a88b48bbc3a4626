package memory

import (
	"context"
	"sync"
	"time"
)

type MarkerStore struct {
	mu     sync.RWMutex
	voided map[string]time.Time
}

func NewMarkerStore() *MarkerStore {
	return &MarkerStore{voided: make(map[string]time.Time)}
}

func (s *MarkerStore) IsVoided(_ context.Context, externalRef string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.voided[externalRef]
	return ok, nil
}

func (s *MarkerStore) MarkVoided(_ context.Context, externalRef string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.voided[externalRef]; !ok {
		s.voided[externalRef] = at
	}
	return nil
}
