package services

import (
	"context"
	"time"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/ports"
)

// CapacityLedger is the read-optimized store of confirmed reservations. The
// order system remains the source of truth; Rebuild resynchronizes from it.
type CapacityLedger struct {
	repo ports.ReservationRepository
}

func NewCapacityLedger(repo ports.ReservationRepository) *CapacityLedger {
	return &CapacityLedger{repo: repo}
}

func (l *CapacityLedger) ListConfirmed(ctx context.Context, resourceID string) ([]domain.ConfirmedReservation, error) {
	entries, err := l.repo.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, domain.NewPersistenceError("ledger.list", err)
	}
	return entries, nil
}

func (l *CapacityLedger) UnitsOn(ctx context.Context, resourceID string, date time.Time) (int, error) {
	entries, err := l.ListConfirmed(ctx, resourceID)
	if err != nil {
		return 0, err
	}
	return confirmedUnitsOn(entries, date), nil
}

// Add appends entry unless the resource already has one for the same
// external reference. The boolean reports whether a row was written.
func (l *CapacityLedger) Add(ctx context.Context, entry domain.ConfirmedReservation) (bool, error) {
	if entry.ExternalRef == "" {
		return false, domain.ErrMissingExternalRef
	}
	if entry.UnitsHeld < 1 {
		entry.UnitsHeld = 1
	}
	inserted, err := l.repo.Insert(ctx, &entry)
	if err != nil {
		return false, domain.NewPersistenceError("ledger.add", err)
	}
	return inserted, nil
}

func (l *CapacityLedger) FindByExternalRef(ctx context.Context, externalRef string) ([]domain.ConfirmedReservation, error) {
	entries, err := l.repo.FindByExternalRef(ctx, externalRef)
	if err != nil {
		return nil, domain.NewPersistenceError("ledger.find", err)
	}
	return entries, nil
}

func (l *CapacityLedger) RemoveByExternalRef(ctx context.Context, resourceID, externalRef string) (int64, error) {
	n, err := l.repo.DeleteByExternalRef(ctx, resourceID, externalRef)
	if err != nil {
		return 0, domain.NewPersistenceError("ledger.remove", err)
	}
	return n, nil
}

func (l *CapacityLedger) NormalizeUnits(ctx context.Context, entry domain.ConfirmedReservation) error {
	if err := l.repo.UpdateUnitsHeld(ctx, entry.ID, 1); err != nil {
		return domain.NewPersistenceError("ledger.normalize", err)
	}
	return nil
}

// Rebuild atomically replaces the ledger of resourceID. Entries are
// deduplicated by external reference and normalized to one unit.
func (l *CapacityLedger) Rebuild(ctx context.Context, resourceID string, entries []domain.ConfirmedReservation) error {
	seen := make(map[string]struct{}, len(entries))
	clean := make([]domain.ConfirmedReservation, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ExternalRef]; dup {
			continue
		}
		seen[e.ExternalRef] = struct{}{}
		e.ResourceID = resourceID
		e.UnitsHeld = 1
		clean = append(clean, e)
	}
	if err := l.repo.ReplaceForResource(ctx, resourceID, clean); err != nil {
		return domain.NewPersistenceError("ledger.rebuild", err)
	}
	return nil
}

func confirmedUnitsOn(entries []domain.ConfirmedReservation, date time.Time) int {
	total := 0
	for i := range entries {
		if entries[i].Covers(date) {
			total += entries[i].Units()
		}
	}
	return total
}
