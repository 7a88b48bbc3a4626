package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/ports"
	"github.com/srgjo27/cowork_booking/internal/platform/clock"
)

type AcquireHoldRequest struct {
	ResourceID string `json:"resource_id"`
	Start      string `json:"start"`
	End        string `json:"end,omitempty"`
	Unit       string `json:"unit,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
}

type AcquireHoldResponse struct {
	Token      string `json:"token"`
	ResourceID string `json:"resource_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Kind       string `json:"kind"`
	ExpiresAt  string `json:"expires_at"`
}

type ConfirmOutcome string

const (
	ConfirmCreated   ConfirmOutcome = "CREATED"
	ConfirmDuplicate ConfirmOutcome = "DUPLICATE"
	ConfirmVoided    ConfirmOutcome = "VOIDED"
)

type ConfirmResult struct {
	Outcome     ConfirmOutcome               `json:"outcome"`
	Reservation *domain.ConfirmedReservation `json:"reservation,omitempty"`
	// HoldLost is set when payment arrived after the hold expired or vanished.
	HoldLost bool `json:"hold_lost"`
}

type VoidResult struct {
	Removed       int64 `json:"removed"`
	AlreadyVoided bool  `json:"already_voided"`
}

// BookingService coordinates the hold -> confirmed -> voided lifecycle.
type BookingService struct {
	engine    *AvailabilityEngine
	locks     *LockManager
	ledger    *CapacityLedger
	intents   ports.IntentRepository
	markers   ports.MarkerRepository
	orders    ports.OrderSystem
	publisher ports.EventPublisher
	cache     *calendarCache
	clock     clock.Clock
	logger    *slog.Logger
}

type BookingServiceOption func(*BookingService)

func WithPublisher(p ports.EventPublisher) BookingServiceOption {
	return func(s *BookingService) {
		s.publisher = p
	}
}

func WithLogger(logger *slog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		if logger != nil {
			s.logger = logger
			s.cache.logger = logger
		}
	}
}

func WithClock(clk clock.Clock) BookingServiceOption {
	return func(s *BookingService) {
		if clk != nil {
			s.clock = clk
		}
	}
}

// WithCalendarTTL sets how long a cached month view is served.
func WithCalendarTTL(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.cache.ttl = d
		}
	}
}

func NewBookingService(
	engine *AvailabilityEngine,
	locks *LockManager,
	ledger *CapacityLedger,
	intents ports.IntentRepository,
	markers ports.MarkerRepository,
	orders ports.OrderSystem,
	redisClient *redis.Client,
	opts ...BookingServiceOption,
) *BookingService {
	s := &BookingService{
		engine:  engine,
		locks:   locks,
		ledger:  ledger,
		intents: intents,
		markers: markers,
		orders:  orders,
		cache:   &calendarCache{client: redisClient, ttl: DefaultCalendarTTL, logger: slog.Default()},
		clock:   clock.NewSystem(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BookingService) CheckRange(ctx context.Context, resourceID, start, end string, quantity int) (domain.AvailabilityResult, error) {
	startDate, endDate, err := parseRange(start, end)
	if err != nil {
		return domain.AvailabilityResult{}, err
	}
	return s.engine.CheckRange(ctx, RangeQuery{
		ResourceID: resourceID,
		Start:      startDate,
		End:        endDate,
		Quantity:   quantity,
	})
}

// MonthView returns the calendar of resourceID for month (YYYY-MM).
func (s *BookingService) MonthView(ctx context.Context, resourceID, month string) (*domain.MonthView, error) {
	m, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, &domain.InvalidRangeError{Reason: "month must be formatted YYYY-MM"}
	}
	if view, ok := s.cache.get(ctx, resourceID, m); ok {
		return view, nil
	}
	view, err := s.engine.MonthView(ctx, resourceID, m)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, m, view, s.clock.Now())
	return view, nil
}

func (s *BookingService) AcquireHold(ctx context.Context, req AcquireHoldRequest) (*AcquireHoldResponse, error) {
	start, err := domain.ParseDate(req.Start)
	if err != nil {
		return nil, err
	}
	unit := domain.ParseUnit(req.Unit)
	var end time.Time
	if req.End != "" {
		if end, err = domain.ParseDate(req.End); err != nil {
			return nil, err
		}
	} else {
		if req.Quantity < 0 {
			return nil, &domain.InvalidRangeError{Reason: "quantity must be positive"}
		}
		end = domain.EndDate(start, unit, req.Quantity)
	}

	res, _, err := s.engine.check(ctx, RangeQuery{ResourceID: req.ResourceID, Start: start, End: end, Quantity: 1})
	if err != nil {
		var capErr *domain.CapacityExceededError
		if errors.As(err, &capErr) {
			s.logger.Info("hold rejected",
				"resource_id", req.ResourceID,
				"start", req.Start,
				"first_blocked_date", domain.FormatDate(capErr.Date))
		}
		return nil, err
	}

	token := uuid.NewString()
	hold, err := s.locks.Acquire(ctx, res.ID, start, end, token, s.locks.TTLFor(res))
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	now := s.clock.Now()
	intent := &domain.BookingIntent{
		Token:      token,
		ResourceID: res.ID,
		Start:      hold.Start,
		End:        hold.End,
		Unit:       unit,
		Quantity:   quantity,
		State:      domain.IntentHeld,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.intents.Save(ctx, intent); err != nil {
		s.rollbackHold(ctx, token)
		return nil, domain.NewPersistenceError("intents.save", err)
	}

	s.cache.invalidate(ctx, res.ID, hold.Start, hold.End)
	s.logger.Info("hold acquired",
		"resource_id", res.ID,
		"token", token,
		"kind", hold.Kind(),
		"expires_at", hold.ExpiresAt)

	return &AcquireHoldResponse{
		Token:      token,
		ResourceID: res.ID,
		Start:      domain.FormatDate(hold.Start),
		End:        domain.FormatDate(hold.End),
		Kind:       string(hold.Kind()),
		ExpiresAt:  hold.ExpiresAt.Format(time.RFC3339),
	}, nil
}

func (s *BookingService) rollbackHold(ctx context.Context, token string) {
	if _, err := s.locks.Release(ctx, token); err != nil {
		s.logger.Error("rolling back hold failed", "token", token, "error", err)
	}
}

// ReleaseHold cancels a checkout. Unknown or already released tokens are a no-op.
func (s *BookingService) ReleaseHold(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrMissingToken
	}
	hold, err := s.locks.Get(ctx, token)
	if err != nil {
		return err
	}
	if _, err := s.locks.Release(ctx, token); err != nil {
		return err
	}

	intent, err := s.intents.GetByToken(ctx, token)
	if err != nil {
		return domain.NewPersistenceError("intents.get", err)
	}
	if intent != nil && intent.IsPending() {
		if err := s.intents.UpdateState(ctx, token, domain.IntentCancelled, "", s.clock.Now()); err != nil {
			return domain.NewPersistenceError("intents.update", err)
		}
	}

	if hold == nil {
		s.logger.Debug("release of unknown hold ignored", "token", token)
		return nil
	}
	s.cache.invalidate(ctx, hold.ResourceID, hold.Start, hold.End)
	s.logger.Info("hold released", "resource_id", hold.ResourceID, "token", token)
	return nil
}

// VerifyHold re-runs the availability check for a live hold, ignoring the
// hold itself. Callers use it right before capturing payment.
func (s *BookingService) VerifyHold(ctx context.Context, token string) (domain.AvailabilityResult, error) {
	if token == "" {
		return domain.AvailabilityResult{}, domain.ErrMissingToken
	}
	hold, err := s.locks.Get(ctx, token)
	if err != nil {
		return domain.AvailabilityResult{}, err
	}
	if hold == nil || !hold.IsLive(s.clock.Now()) {
		return domain.AvailabilityResult{}, &domain.HoldNotFoundError{Token: token}
	}
	return s.engine.CheckRange(ctx, RangeQuery{
		ResourceID:   hold.ResourceID,
		Start:        hold.Start,
		End:          hold.End,
		Quantity:     hold.Units(),
		ExcludeToken: token,
	})
}

// ConfirmReservation turns the hold behind token into a ledger entry once the
// order externalRef is paid. It is safe to call repeatedly for the same
// reference. A hold that already expired still yields a reservation and the
// conflict risk is logged.
func (s *BookingService) ConfirmReservation(ctx context.Context, token, externalRef string) (*ConfirmResult, error) {
	if externalRef == "" {
		return nil, domain.ErrMissingExternalRef
	}
	now := s.clock.Now()

	voided, err := s.markers.IsVoided(ctx, externalRef)
	if err != nil {
		return nil, domain.NewPersistenceError("markers.get", err)
	}
	if voided {
		if err := s.releaseAndFlush(ctx, token); err != nil {
			return nil, err
		}
		s.logger.Warn("confirmation for voided order ignored", "external_ref", externalRef, "token", token)
		return &ConfirmResult{Outcome: ConfirmVoided}, nil
	}

	existing, err := s.ledger.FindByExternalRef(ctx, externalRef)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		hold, err := s.holdFor(ctx, token)
		if err != nil {
			return nil, err
		}
		if err := s.finishConfirm(ctx, token, externalRef, now); err != nil {
			return nil, err
		}
		if hold != nil {
			s.cache.invalidate(ctx, hold.ResourceID, hold.Start, hold.End)
		}
		return &ConfirmResult{Outcome: ConfirmDuplicate, Reservation: &existing[0]}, nil
	}

	reservation, holdLost, err := s.reservationFor(ctx, token, externalRef, now)
	if err != nil {
		return nil, err
	}

	inserted, err := s.ledger.Add(ctx, *reservation)
	if err != nil {
		return nil, err
	}
	if err := s.finishConfirm(ctx, token, externalRef, now); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, reservation.ResourceID, reservation.Start, reservation.End)

	if !inserted {
		return &ConfirmResult{Outcome: ConfirmDuplicate, Reservation: reservation, HoldLost: holdLost}, nil
	}
	s.logger.Info("reservation confirmed",
		"resource_id", reservation.ResourceID,
		"external_ref", externalRef,
		"start", domain.FormatDate(reservation.Start),
		"end", domain.FormatDate(reservation.End))
	s.publish(ctx, domain.NewReservationEvent(domain.EventReservationConfirmed, *reservation, now))
	return &ConfirmResult{Outcome: ConfirmCreated, Reservation: reservation, HoldLost: holdLost}, nil
}

// reservationFor builds the ledger entry from the live hold, or, when the
// hold is gone, from the booking intent and then the order itself.
func (s *BookingService) reservationFor(ctx context.Context, token, externalRef string, now time.Time) (*domain.ConfirmedReservation, bool, error) {
	entry := &domain.ConfirmedReservation{
		ID:          uuid.New(),
		UnitsHeld:   1,
		ExternalRef: externalRef,
		CreatedAt:   now,
	}

	var hold *domain.ProvisionalHold
	if token != "" {
		var err error
		if hold, err = s.locks.Get(ctx, token); err != nil {
			return nil, false, err
		}
	}
	if hold != nil && hold.IsLive(now) {
		entry.ResourceID, entry.Start, entry.End = hold.ResourceID, hold.Start, hold.End
		return entry, false, nil
	}

	s.logger.Warn("confirming without a live hold, capacity may be exceeded",
		"token", token,
		"external_ref", externalRef,
		"error", &domain.HoldNotFoundError{Token: token})

	if hold != nil {
		entry.ResourceID, entry.Start, entry.End = hold.ResourceID, hold.Start, hold.End
		return entry, true, nil
	}
	if token != "" {
		intent, err := s.intents.GetByToken(ctx, token)
		if err != nil {
			return nil, true, domain.NewPersistenceError("intents.get", err)
		}
		if intent != nil {
			entry.ResourceID, entry.Start, entry.End = intent.ResourceID, intent.Start, intent.End
			return entry, true, nil
		}
	}
	order, err := s.orders.GetOrder(ctx, externalRef)
	if err != nil {
		return nil, true, domain.NewPersistenceError("orders.get", err)
	}
	if order == nil || order.ResourceID == "" {
		return nil, true, &domain.HoldNotFoundError{Token: token}
	}
	entry.ResourceID, entry.Start, entry.End = order.ResourceID, domain.Day(order.Start), domain.Day(order.End)
	return entry, true, nil
}

func (s *BookingService) finishConfirm(ctx context.Context, token, externalRef string, now time.Time) error {
	if token == "" {
		return nil
	}
	if err := s.releaseQuietly(ctx, token); err != nil {
		return err
	}
	if err := s.intents.UpdateState(ctx, token, domain.IntentConfirmed, externalRef, now); err != nil {
		return domain.NewPersistenceError("intents.update", err)
	}
	return nil
}

func (s *BookingService) holdFor(ctx context.Context, token string) (*domain.ProvisionalHold, error) {
	if token == "" {
		return nil, nil
	}
	return s.locks.Get(ctx, token)
}

// releaseAndFlush releases the hold behind token and drops the cached months
// it covered.
func (s *BookingService) releaseAndFlush(ctx context.Context, token string) error {
	hold, err := s.holdFor(ctx, token)
	if err != nil {
		return err
	}
	if err := s.releaseQuietly(ctx, token); err != nil {
		return err
	}
	if hold != nil {
		s.cache.invalidate(ctx, hold.ResourceID, hold.Start, hold.End)
	}
	return nil
}

func (s *BookingService) releaseQuietly(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := s.locks.Release(ctx, token)
	return err
}

// VoidReservation frees the capacity of a cancelled, refunded or deleted
// order. A reference is processed at most once; unknown references are
// recorded too so a late confirmation cannot resurrect them.
func (s *BookingService) VoidReservation(ctx context.Context, externalRef string) (*VoidResult, error) {
	if externalRef == "" {
		return nil, domain.ErrMissingExternalRef
	}
	voided, err := s.markers.IsVoided(ctx, externalRef)
	if err != nil {
		return nil, domain.NewPersistenceError("markers.get", err)
	}
	if voided {
		return &VoidResult{AlreadyVoided: true}, nil
	}

	entries, err := s.ledger.FindByExternalRef(ctx, externalRef)
	if err != nil {
		return nil, err
	}
	var removed int64
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ResourceID] {
			continue
		}
		seen[e.ResourceID] = true
		n, err := s.ledger.RemoveByExternalRef(ctx, e.ResourceID, externalRef)
		if err != nil {
			return nil, err
		}
		removed += n
	}

	now := s.clock.Now()
	if err := s.markers.MarkVoided(ctx, externalRef, now); err != nil {
		return nil, domain.NewPersistenceError("markers.mark", err)
	}
	if err := s.intents.UpdateStateByRef(ctx, externalRef, domain.IntentVoided, now); err != nil {
		return nil, domain.NewPersistenceError("intents.update", err)
	}

	if len(entries) == 0 {
		s.logger.Info("void for unconfirmed order recorded", "external_ref", externalRef)
	}
	for _, e := range entries {
		s.cache.invalidate(ctx, e.ResourceID, e.Start, e.End)
		s.publish(ctx, domain.NewReservationEvent(domain.EventReservationVoided, e, now))
		s.logger.Info("reservation voided", "resource_id", e.ResourceID, "external_ref", externalRef)
	}
	return &VoidResult{Removed: removed}, nil
}

func (s *BookingService) publish(ctx context.Context, event domain.ReservationEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publishing reservation event failed",
			"type", event.Type,
			"external_ref", event.ExternalRef,
			"error", err)
	}
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := domain.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end == "" {
		return startDate, startDate, nil
	}
	endDate, err := domain.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startDate, endDate, nil
}
