package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/ports"
	"github.com/srgjo27/cowork_booking/internal/platform/clock"
)

// DefaultIntentMaxAge is how long an unconfirmed checkout attempt is kept.
const DefaultIntentMaxAge = 24 * time.Hour

type SweepReport struct {
	StartedAt              time.Time                       `json:"started_at"`
	FinishedAt             time.Time                       `json:"finished_at"`
	ExpiredHolds           int64                           `json:"expired_holds"`
	OrphanedHolds          int                             `json:"orphaned_holds"`
	DroppedReservations    int                             `json:"dropped_reservations"`
	NormalizedReservations int                             `json:"normalized_reservations"`
	Mismatches             []domain.ReconciliationMismatch `json:"mismatches"`
	PurgedIntents          int64                           `json:"purged_intents"`
}

// MaintenanceSweeper reconciles holds, ledger and intents against the order
// system. Only one sweep runs at a time.
type MaintenanceSweeper struct {
	resources    ports.ResourceRepository
	ledger       *CapacityLedger
	locks        *LockManager
	intents      ports.IntentRepository
	orders       ports.OrderSystem
	cache        *calendarCache
	clock        clock.Clock
	logger       *slog.Logger
	intentMaxAge time.Duration
	running      sync.Mutex
}

func NewMaintenanceSweeper(
	resources ports.ResourceRepository,
	ledger *CapacityLedger,
	locks *LockManager,
	intents ports.IntentRepository,
	orders ports.OrderSystem,
	redisClient *redis.Client,
	clk clock.Clock,
	logger *slog.Logger,
) *MaintenanceSweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &MaintenanceSweeper{
		resources:    resources,
		ledger:       ledger,
		locks:        locks,
		intents:      intents,
		orders:       orders,
		cache:        &calendarCache{client: redisClient, ttl: DefaultCalendarTTL, logger: logger},
		clock:        clk,
		logger:       logger,
		intentMaxAge: DefaultIntentMaxAge,
	}
}

// Run executes one full sweep. Every step runs even if an earlier one
// failed; the failures are joined into the returned error.
func (s *MaintenanceSweeper) Run(ctx context.Context) (*SweepReport, error) {
	if !s.running.TryLock() {
		return nil, domain.ErrSweepInProgress
	}
	defer s.running.Unlock()

	now := s.clock.Now()
	report := &SweepReport{StartedAt: now, Mismatches: []domain.ReconciliationMismatch{}}
	var errs []error

	expired, err := s.locks.EvictExpired(ctx, "", now)
	if err != nil {
		errs = append(errs, err)
	}
	report.ExpiredHolds = expired

	if err := s.releaseOrphans(ctx, now, report); err != nil {
		errs = append(errs, err)
	}

	resources, err := s.resources.List(ctx)
	if err != nil {
		errs = append(errs, domain.NewPersistenceError("resources.list", err))
	}
	for _, res := range resources {
		if err := s.reconcileResource(ctx, res.ID, report); err != nil {
			errs = append(errs, err)
		}
	}

	purged, err := s.intents.DeletePendingBefore(ctx, now.Add(-s.intentMaxAge))
	if err != nil {
		errs = append(errs, domain.NewPersistenceError("intents.purge", err))
	}
	report.PurgedIntents = purged

	report.FinishedAt = s.clock.Now()
	s.logger.Info("maintenance sweep finished",
		"expired_holds", report.ExpiredHolds,
		"orphaned_holds", report.OrphanedHolds,
		"dropped_reservations", report.DroppedReservations,
		"normalized_reservations", report.NormalizedReservations,
		"mismatches", len(report.Mismatches),
		"purged_intents", report.PurgedIntents,
		"errors", len(errs))
	return report, errors.Join(errs...)
}

// releaseOrphans drops live holds that no in-flight order references, which
// covers checkouts that crashed or were abandoned without an explicit cancel.
func (s *MaintenanceSweeper) releaseOrphans(ctx context.Context, now time.Time, report *SweepReport) error {
	live, err := s.locks.ListAllLive(ctx, now)
	if err != nil {
		return err
	}
	var errs []error
	for _, hold := range live {
		inFlight, err := s.orders.HasInFlightOrder(ctx, hold.Token)
		if err != nil {
			errs = append(errs, domain.NewPersistenceError("orders.in_flight", err))
			continue
		}
		if inFlight {
			continue
		}
		if _, err := s.locks.Release(ctx, hold.Token); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.intents.UpdateState(ctx, hold.Token, domain.IntentExpired, "", now); err != nil {
			errs = append(errs, domain.NewPersistenceError("intents.update", err))
		}
		report.OrphanedHolds++
		s.cache.invalidate(ctx, hold.ResourceID, hold.Start, hold.End)
		s.logger.Warn("orphaned hold released", "resource_id", hold.ResourceID, "token", hold.Token)
	}
	return errors.Join(errs...)
}

func (s *MaintenanceSweeper) reconcileResource(ctx context.Context, resourceID string, report *SweepReport) error {
	entries, err := s.ledger.ListConfirmed(ctx, resourceID)
	if err != nil {
		return err
	}

	var errs []error
	kept := make(map[string]domain.ConfirmedReservation, len(entries))
	changed := false
	for _, e := range entries {
		order, err := s.orders.GetOrder(ctx, e.ExternalRef)
		if err != nil {
			errs = append(errs, domain.NewPersistenceError("orders.get", err))
			kept[e.ExternalRef] = e
			continue
		}
		if order == nil || !order.IsActive() {
			if _, err := s.ledger.RemoveByExternalRef(ctx, resourceID, e.ExternalRef); err != nil {
				errs = append(errs, err)
				kept[e.ExternalRef] = e
				continue
			}
			report.DroppedReservations++
			changed = true
			s.logger.Warn("stale reservation dropped",
				"resource_id", resourceID,
				"external_ref", e.ExternalRef,
				"order_found", order != nil)
			continue
		}
		if e.UnitsHeld != 1 {
			if err := s.ledger.NormalizeUnits(ctx, e); err != nil {
				errs = append(errs, err)
			} else {
				report.NormalizedReservations++
				changed = true
			}
		}
		kept[e.ExternalRef] = e
	}
	if changed {
		s.cache.invalidateResource(ctx, resourceID)
	}

	active, err := s.orders.ActiveOrdersForResource(ctx, resourceID)
	if err != nil {
		errs = append(errs, domain.NewPersistenceError("orders.active", err))
		return errors.Join(errs...)
	}
	for _, m := range compareLedger(resourceID, kept, active) {
		report.Mismatches = append(report.Mismatches, m)
		s.logger.Warn("reconciliation mismatch",
			"resource_id", m.ResourceID,
			"external_ref", m.ExternalRef,
			"detail", m.Detail)
	}
	return errors.Join(errs...)
}

func compareLedger(resourceID string, ledger map[string]domain.ConfirmedReservation, active []domain.Order) []domain.ReconciliationMismatch {
	var out []domain.ReconciliationMismatch
	ordered := make(map[string]bool, len(active))
	for _, o := range active {
		ordered[o.ExternalRef] = true
		e, ok := ledger[o.ExternalRef]
		if !ok {
			out = append(out, domain.ReconciliationMismatch{
				ResourceID:  resourceID,
				ExternalRef: o.ExternalRef,
				Detail:      "active order has no ledger entry",
			})
			continue
		}
		if !domain.Day(e.Start).Equal(domain.Day(o.Start)) || !domain.Day(e.End).Equal(domain.Day(o.End)) {
			out = append(out, domain.ReconciliationMismatch{
				ResourceID:  resourceID,
				ExternalRef: o.ExternalRef,
				Detail: "ledger range " + domain.FormatDate(e.Start) + ".." + domain.FormatDate(e.End) +
					" differs from order range " + domain.FormatDate(o.Start) + ".." + domain.FormatDate(o.End),
			})
		}
	}
	for ref := range ledger {
		if !ordered[ref] {
			out = append(out, domain.ReconciliationMismatch{
				ResourceID:  resourceID,
				ExternalRef: ref,
				Detail:      "ledger entry not referenced by the order system for this resource",
			})
		}
	}
	return out
}

// RebuildLedger replaces the ledger of resourceID with the reservations of
// its active orders and returns how many entries were written.
func (s *MaintenanceSweeper) RebuildLedger(ctx context.Context, resourceID string) (int, error) {
	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return 0, err
		}
		return 0, domain.NewPersistenceError("resources.get", err)
	}
	orders, err := s.orders.ActiveOrdersForResource(ctx, resourceID)
	if err != nil {
		return 0, domain.NewPersistenceError("orders.active", err)
	}
	now := s.clock.Now()
	entries := make([]domain.ConfirmedReservation, 0, len(orders))
	seen := make(map[string]bool, len(orders))
	for i := range orders {
		if seen[orders[i].ExternalRef] {
			continue
		}
		seen[orders[i].ExternalRef] = true
		entries = append(entries, orders[i].Reservation(now))
	}
	if err := s.ledger.Rebuild(ctx, resourceID, entries); err != nil {
		return 0, err
	}
	s.cache.invalidateResource(ctx, resourceID)
	s.logger.Info("ledger rebuilt", "resource_id", resourceID, "entries", len(entries))
	return len(entries), nil
}

// RunBackgroundCleanup sweeps every interval until ctx is cancelled.
func (s *MaintenanceSweeper) RunBackgroundCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("maintenance sweeper started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("maintenance sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Run(ctx); err != nil {
				s.logger.Error("maintenance sweep failed", "error", err)
			}
		}
	}
}
