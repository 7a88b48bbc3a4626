package domain

import "time"

type IntentState string

const (
	IntentRequested IntentState = "REQUESTED"
	IntentHeld      IntentState = "HELD"
	IntentConfirmed IntentState = "CONFIRMED"
	IntentExpired   IntentState = "EXPIRED"
	IntentCancelled IntentState = "CANCELLED"
	IntentVoided    IntentState = "VOIDED"
)

// BookingIntent tracks one checkout attempt, keyed by its hold token.
type BookingIntent struct {
	Token       string
	ResourceID  string
	Start       time.Time
	End         time.Time
	Unit        BookingUnit
	Quantity    int
	State       IntentState
	ExternalRef string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPending reports whether the attempt has not reached a terminal state.
func (i *BookingIntent) IsPending() bool {
	return i.State == IntentRequested || i.State == IntentHeld
}
