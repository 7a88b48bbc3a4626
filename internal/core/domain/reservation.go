package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmedReservation is a paid booking. It is never edited, only deleted
// when the order behind ExternalRef is cancelled or found invalid.
type ConfirmedReservation struct {
	ID          uuid.UUID `json:"id"`
	ResourceID  string    `json:"resource_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	UnitsHeld   int       `json:"units_held"`
	ExternalRef string    `json:"external_ref"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *ConfirmedReservation) Covers(date time.Time) bool {
	return covers(r.Start, r.End, date)
}

func (r *ConfirmedReservation) Units() int {
	if r.UnitsHeld < 1 {
		return 1
	}
	return r.UnitsHeld
}

func covers(start, end, date time.Time) bool {
	d := Day(date)
	return !d.Before(Day(start)) && !d.After(Day(end))
}
