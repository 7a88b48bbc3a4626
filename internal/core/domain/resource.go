package domain

import "time"

type BlackoutEntry struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason,omitempty"`
}

// Resource is a bookable space. Capacity is the number of concurrent
// occupants it accepts on a single day.
type Resource struct {
	ID        string
	Name      string
	Capacity  int
	Blackouts []BlackoutEntry
}

// EffectiveCapacity never reports less than one.
func (r *Resource) EffectiveCapacity() int {
	if r.Capacity <= 0 {
		return 1
	}
	return r.Capacity
}

func (r *Resource) Blackout(date time.Time) (BlackoutEntry, bool) {
	day := Day(date)
	for _, b := range r.Blackouts {
		if Day(b.Date).Equal(day) {
			return b, true
		}
	}
	return BlackoutEntry{}, false
}
