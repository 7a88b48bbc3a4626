package domain

import "time"

type DayStatus string

const (
	DayAvailable DayStatus = "available"
	DayLow       DayStatus = "low"
	DayFull      DayStatus = "full"
	DayBlocked   DayStatus = "blocked"
)

// LowThreshold is the remaining-unit count at or below which a day is "low".
const LowThreshold = 2

type AvailabilityDay struct {
	Date           time.Time `json:"date"`
	RemainingUnits int       `json:"remaining_units"`
	Status         DayStatus `json:"status"`
	Reason         string    `json:"reason,omitempty"`
}

type AvailabilityResult struct {
	OK               bool       `json:"ok"`
	FirstBlockedDate *time.Time `json:"first_blocked_date,omitempty"`
}

type MonthView struct {
	ResourceID string            `json:"resource_id"`
	Month      string            `json:"month"`
	Days       []AvailabilityDay `json:"days"`

	// ValidUntil is when the view can first change without a write: the
	// earliest expiry of a hold it counts, or the next midnight.
	ValidUntil time.Time `json:"-"`
}

func (v *MonthView) Day(date time.Time) (AvailabilityDay, bool) {
	d := Day(date)
	for _, day := range v.Days {
		if day.Date.Equal(d) {
			return day, true
		}
	}
	return AvailabilityDay{}, false
}

// StatusFor classifies remaining capacity. Blocked days are decided by the
// caller since they do not depend on the count.
func StatusFor(remaining int) DayStatus {
	switch {
	case remaining <= 0:
		return DayFull
	case remaining <= LowThreshold:
		return DayLow
	default:
		return DayAvailable
	}
}
