package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

// ResourceRepository returns domain.ErrResourceNotFound for unknown ids.
type ResourceRepository interface {
	GetByID(ctx context.Context, resourceID string) (*domain.Resource, error)
	List(ctx context.Context) ([]domain.Resource, error)
}

// ReservationRepository stores the capacity ledger.
type ReservationRepository interface {
	ListByResource(ctx context.Context, resourceID string) ([]domain.ConfirmedReservation, error)
	FindByExternalRef(ctx context.Context, externalRef string) ([]domain.ConfirmedReservation, error)
	// Insert reports false without error when the resource already holds an
	// entry for the same external reference.
	Insert(ctx context.Context, reservation *domain.ConfirmedReservation) (bool, error)
	DeleteByExternalRef(ctx context.Context, resourceID string, externalRef string) (int64, error)
	UpdateUnitsHeld(ctx context.Context, reservationID uuid.UUID, units int) error
	ReplaceForResource(ctx context.Context, resourceID string, reservations []domain.ConfirmedReservation) error
}

// HoldRepository stores provisional holds. Reads return dead holds too;
// filtering by expiry is the caller's job.
type HoldRepository interface {
	ListByResource(ctx context.Context, resourceID string) ([]domain.ProvisionalHold, error)
	ListAll(ctx context.Context) ([]domain.ProvisionalHold, error)
	// GetByToken returns nil, nil when no hold matches.
	GetByToken(ctx context.Context, token string) (*domain.ProvisionalHold, error)
	// Save inserts the hold or replaces the one stored under the same token.
	Save(ctx context.Context, hold *domain.ProvisionalHold) error
	Delete(ctx context.Context, token string) (bool, error)
	// DeleteExpired removes holds with expires_at <= now. An empty
	// resourceID targets every resource.
	DeleteExpired(ctx context.Context, resourceID string, now time.Time) (int64, error)
}

type IntentRepository interface {
	Save(ctx context.Context, intent *domain.BookingIntent) error
	GetByToken(ctx context.Context, token string) (*domain.BookingIntent, error)
	UpdateState(ctx context.Context, token string, state domain.IntentState, externalRef string, at time.Time) error
	UpdateStateByRef(ctx context.Context, externalRef string, state domain.IntentState, at time.Time) error
	DeletePendingBefore(ctx context.Context, before time.Time) (int64, error)
}

// MarkerRepository remembers external references that were already voided.
type MarkerRepository interface {
	IsVoided(ctx context.Context, externalRef string) (bool, error)
	MarkVoided(ctx context.Context, externalRef string, at time.Time) error
}

// OrderSystem is a read-only view of the system of record for payments.
type OrderSystem interface {
	// GetOrder returns nil, nil when the reference is unknown.
	GetOrder(ctx context.Context, externalRef string) (*domain.Order, error)
	HasInFlightOrder(ctx context.Context, holdToken string) (bool, error)
	ActiveOrdersForResource(ctx context.Context, resourceID string) ([]domain.Order, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent) error
}
