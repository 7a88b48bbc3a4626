package domain

import (
	"iter"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// BookingUnit is the duration formula a customer buys: days, weeks or months.
type BookingUnit string

const (
	UnitDay   BookingUnit = "day"
	UnitWeek  BookingUnit = "week"
	UnitMonth BookingUnit = "month"
)

var unitDayCount = map[BookingUnit]int{
	UnitDay:   1,
	UnitWeek:  7,
	UnitMonth: 30,
}

// ParseUnit maps a formula name to a BookingUnit. The French names used by the
// storefront ("journee", "semaine", "mois") are accepted as aliases. Anything
// unknown falls back to UnitDay.
func ParseUnit(s string) BookingUnit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "weeks", "semaine":
		return UnitWeek
	case "month", "months", "mois":
		return UnitMonth
	default:
		return UnitDay
	}
}

func UnitDays(u BookingUnit) int {
	if n, ok := unitDayCount[u]; ok {
		return n
	}
	return 1
}

// EndDate returns the inclusive last day of a booking of quantity units
// starting on start. The start day counts toward the duration.
func EndDate(start time.Time, u BookingUnit, quantity int) time.Time {
	if quantity < 1 {
		quantity = 1
	}
	return Day(start).AddDate(0, 0, UnitDays(u)*quantity-1)
}

// DaysInRange yields every calendar day from start to end inclusive.
// The sequence is empty when end is before start.
func DaysInRange(start, end time.Time) iter.Seq[time.Time] {
	first, last := Day(start), Day(end)
	return func(yield func(time.Time) bool) {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Day truncates t to its calendar date, expressed as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now as seen in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Day(now.In(loc))
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &InvalidRangeError{Reason: "malformed date " + `"` + s + `"`}
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthsTouched lists the first day of every month overlapped by [start, end].
func MonthsTouched(start, end time.Time) []time.Time {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}
