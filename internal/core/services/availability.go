package services

import (
	"context"
	"errors"
	"time"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/ports"
	"github.com/srgjo27/cowork_booking/internal/platform/clock"
)

// RangeQuery asks whether Quantity more units fit on every day of
// [Start, End]. ExcludeToken ignores the caller's own hold when re-verifying.
type RangeQuery struct {
	ResourceID   string
	Start        time.Time
	End          time.Time
	Quantity     int
	ExcludeToken string
}

// AvailabilityEngine combines the ledger, live holds and blackout dates.
type AvailabilityEngine struct {
	resources ports.ResourceRepository
	ledger    *CapacityLedger
	locks     *LockManager
	clock     clock.Clock
	loc       *time.Location
}

func NewAvailabilityEngine(resources ports.ResourceRepository, ledger *CapacityLedger, locks *LockManager, clk clock.Clock, loc *time.Location) *AvailabilityEngine {
	if loc == nil {
		loc = time.UTC
	}
	return &AvailabilityEngine{
		resources: resources,
		ledger:    ledger,
		locks:     locks,
		clock:     clk,
		loc:       loc,
	}
}

// EarliestStart is the first bookable day: tomorrow in the booking timezone.
func (e *AvailabilityEngine) EarliestStart() time.Time {
	return domain.Today(e.clock.Now(), e.loc).AddDate(0, 0, 1)
}

func (e *AvailabilityEngine) Resource(ctx context.Context, resourceID string) (*domain.Resource, error) {
	res, err := e.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, err
		}
		return nil, domain.NewPersistenceError("resources.get", err)
	}
	return res, nil
}

func (e *AvailabilityEngine) CheckRange(ctx context.Context, q RangeQuery) (domain.AvailabilityResult, error) {
	_, result, err := e.check(ctx, q)
	return result, err
}

func (e *AvailabilityEngine) check(ctx context.Context, q RangeQuery) (*domain.Resource, domain.AvailabilityResult, error) {
	if q.Start.IsZero() || q.End.IsZero() {
		return nil, domain.AvailabilityResult{}, &domain.InvalidRangeError{Reason: "start and end dates are required"}
	}
	start, end := domain.Day(q.Start), domain.Day(q.End)
	if end.Before(start) {
		return nil, domain.AvailabilityResult{}, &domain.InvalidRangeError{Reason: "end date is before start date"}
	}
	if earliest := e.EarliestStart(); start.Before(earliest) {
		return nil, domain.AvailabilityResult{}, &domain.LeadTimeError{Start: start, EarliestStart: earliest}
	}
	quantity := q.Quantity
	if quantity < 1 {
		quantity = 1
	}

	res, err := e.Resource(ctx, q.ResourceID)
	if err != nil {
		return nil, domain.AvailabilityResult{}, err
	}
	confirmed, err := e.ledger.ListConfirmed(ctx, res.ID)
	if err != nil {
		return nil, domain.AvailabilityResult{}, err
	}
	holds, err := e.locks.ListLive(ctx, res.ID, e.clock.Now())
	if err != nil {
		return nil, domain.AvailabilityResult{}, err
	}

	capacity := res.EffectiveCapacity()
	for day := range domain.DaysInRange(start, end) {
		if blackout, ok := res.Blackout(day); ok {
			return res, blocked(day), &domain.CapacityExceededError{
				ResourceID: res.ID,
				Date:       day,
				Blackout:   true,
				Reason:     blackout.Reason,
			}
		}
		reserved := confirmedUnitsOn(confirmed, day) + holdUnitsOn(holds, day, q.ExcludeToken)
		if reserved+quantity > capacity {
			return res, blocked(day), &domain.CapacityExceededError{ResourceID: res.ID, Date: day}
		}
	}
	return res, domain.AvailabilityResult{OK: true}, nil
}

// nextMidnight is the instant today stops being today in the booking timezone.
func (e *AvailabilityEngine) nextMidnight(now time.Time) time.Time {
	local := now.In(e.loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, e.loc)
}

func blocked(day time.Time) domain.AvailabilityResult {
	d := day
	return domain.AvailabilityResult{OK: false, FirstBlockedDate: &d}
}

// MonthView computes the status of every day of the month containing month.
func (e *AvailabilityEngine) MonthView(ctx context.Context, resourceID string, month time.Time) (*domain.MonthView, error) {
	res, err := e.Resource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	confirmed, err := e.ledger.ListConfirmed(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	now := e.clock.Now()
	holds, err := e.locks.ListLive(ctx, res.ID, now)
	if err != nil {
		return nil, err
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	today := domain.Today(now, e.loc)
	capacity := res.EffectiveCapacity()

	view := &domain.MonthView{
		ResourceID: res.ID,
		Month:      first.Format("2006-01"),
		Days:       make([]domain.AvailabilityDay, 0, last.Day()),
		ValidUntil: e.nextMidnight(now),
	}
	for _, h := range holds {
		if h.End.Before(first) || h.Start.After(last) {
			continue
		}
		if h.ExpiresAt.Before(view.ValidUntil) {
			view.ValidUntil = h.ExpiresAt
		}
	}
	for day := range domain.DaysInRange(first, last) {
		if blackout, ok := res.Blackout(day); ok {
			view.Days = append(view.Days, domain.AvailabilityDay{
				Date:   day,
				Status: domain.DayBlocked,
				Reason: blackout.Reason,
			})
			continue
		}
		remaining := capacity - confirmedUnitsOn(confirmed, day) - holdUnitsOn(holds, day, "")
		if remaining < 0 {
			remaining = 0
		}
		status := domain.StatusFor(remaining)
		if !day.After(today) {
			status = domain.DayBlocked
		}
		view.Days = append(view.Days, domain.AvailabilityDay{
			Date:           day,
			RemainingUnits: remaining,
			Status:         status,
		})
	}
	return view, nil
}
