// Package memory keeps engine state in process memory. It backs tests and
// single-instance deployments where HOLD_BACKEND=memory.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

type ReservationStore struct {
	mu         sync.RWMutex
	byResource map[string][]domain.ConfirmedReservation
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{byResource: make(map[string][]domain.ConfirmedReservation)}
}

func (s *ReservationStore) ListByResource(_ context.Context, resourceID string) ([]domain.ConfirmedReservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ConfirmedReservation(nil), s.byResource[resourceID]...), nil
}

func (s *ReservationStore) FindByExternalRef(_ context.Context, externalRef string) ([]domain.ConfirmedReservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ConfirmedReservation
	for _, entries := range s.byResource {
		for _, e := range entries {
			if e.ExternalRef == externalRef {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (s *ReservationStore) Insert(_ context.Context, r *domain.ConfirmedReservation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.byResource[r.ResourceID] {
		if e.ExternalRef == r.ExternalRef {
			return false, nil
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.byResource[r.ResourceID] = append(s.byResource[r.ResourceID], *r)
	return true, nil
}

func (s *ReservationStore) DeleteByExternalRef(_ context.Context, resourceID, externalRef string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.byResource[resourceID]
	kept := make([]domain.ConfirmedReservation, 0, len(entries))
	for _, e := range entries {
		if e.ExternalRef != externalRef {
			kept = append(kept, e)
		}
	}
	s.byResource[resourceID] = kept
	return int64(len(entries) - len(kept)), nil
}

func (s *ReservationStore) UpdateUnitsHeld(_ context.Context, reservationID uuid.UUID, units int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for resourceID, entries := range s.byResource {
		for i := range entries {
			if entries[i].ID == reservationID {
				s.byResource[resourceID][i].UnitsHeld = units
				return nil
			}
		}
	}
	return nil
}

func (s *ReservationStore) ReplaceForResource(_ context.Context, resourceID string, reservations []domain.ConfirmedReservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byResource[resourceID] = append([]domain.ConfirmedReservation(nil), reservations...)
	return nil
}
