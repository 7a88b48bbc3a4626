package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus mirrors the status vocabulary of the external order system.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderOnHold     OrderStatus = "on-hold"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
	OrderFailed     OrderStatus = "failed"
)

// Order is the slice of an external order the engine needs: which resource
// and range it pays for, and which hold token started it.
type Order struct {
	ExternalRef string
	ResourceID  string
	HoldToken   string
	Status      OrderStatus
	Start       time.Time
	End         time.Time
	CreatedAt   time.Time
}

// IsActive reports whether the order still entitles its holder to a reservation.
func (o *Order) IsActive() bool {
	switch o.Status {
	case OrderOnHold, OrderProcessing, OrderCompleted:
		return true
	}
	return false
}

// IsInFlight reports whether checkout for this order may still complete.
func (o *Order) IsInFlight() bool {
	switch o.Status {
	case OrderPending, OrderOnHold, OrderProcessing:
		return true
	}
	return false
}

func (o *Order) Reservation(now time.Time) ConfirmedReservation {
	return ConfirmedReservation{
		ID:          uuid.New(),
		ResourceID:  o.ResourceID,
		Start:       Day(o.Start),
		End:         Day(o.End),
		UnitsHeld:   1,
		ExternalRef: o.ExternalRef,
		CreatedAt:   now,
	}
}
