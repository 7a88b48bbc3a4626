package memory

import (
	"context"
	"sync"
	"time"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

type IntentStore struct {
	mu      sync.RWMutex
	byToken map[string]domain.BookingIntent
}

func NewIntentStore() *IntentStore {
	return &IntentStore{byToken: make(map[string]domain.BookingIntent)}
}

func (s *IntentStore) Save(_ context.Context, intent *domain.BookingIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[intent.Token] = *intent
	return nil
}

func (s *IntentStore) GetByToken(_ context.Context, token string) (*domain.BookingIntent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byToken[token]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (s *IntentStore) UpdateState(_ context.Context, token string, state domain.IntentState, externalRef string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byToken[token]
	if !ok {
		return nil
	}
	i.State = state
	if externalRef != "" {
		i.ExternalRef = externalRef
	}
	i.UpdatedAt = at
	s.byToken[token] = i
	return nil
}

func (s *IntentStore) UpdateStateByRef(_ context.Context, externalRef string, state domain.IntentState, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, i := range s.byToken {
		if i.ExternalRef == externalRef {
			i.State = state
			i.UpdatedAt = at
			s.byToken[token] = i
		}
	}
	return nil
}

func (s *IntentStore) DeletePendingBefore(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for token, i := range s.byToken {
		if i.IsPending() && i.CreatedAt.Before(before) {
			delete(s.byToken, token)
			n++
		}
	}
	return n, nil
}
