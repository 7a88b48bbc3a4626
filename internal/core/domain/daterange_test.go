package domain_test

import (
	"testing"
	"time"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestUnitDays(t *testing.T) {
	assert.Equal(t, 1, domain.UnitDays(domain.UnitDay))
	assert.Equal(t, 7, domain.UnitDays(domain.UnitWeek))
	assert.Equal(t, 30, domain.UnitDays(domain.UnitMonth))
	assert.Equal(t, 1, domain.UnitDays(domain.BookingUnit("fortnight")))
}

func TestParseUnit_AcceptsStorefrontNames(t *testing.T) {
	assert.Equal(t, domain.UnitDay, domain.ParseUnit("journee"))
	assert.Equal(t, domain.UnitWeek, domain.ParseUnit("Semaine"))
	assert.Equal(t, domain.UnitMonth, domain.ParseUnit("mois"))
	assert.Equal(t, domain.UnitDay, domain.ParseUnit("whatever"))
}

func TestEndDate_TwoWeeks(t *testing.T) {
	end := domain.EndDate(date(t, "2025-01-15"), domain.UnitWeek, 2)
	assert.Equal(t, "2025-01-28", domain.FormatDate(end))
}

func TestEndDate_SingleDayEndsOnStart(t *testing.T) {
	start := date(t, "2025-03-10")
	assert.True(t, domain.EndDate(start, domain.UnitDay, 1).Equal(start))
	assert.True(t, domain.EndDate(start, domain.UnitDay, 0).Equal(start))
}

func TestEndDate_RoundTripWithDaysInRange(t *testing.T) {
	start := date(t, "2024-02-20")
	for _, u := range []domain.BookingUnit{domain.UnitDay, domain.UnitWeek, domain.UnitMonth} {
		for qty := 1; qty <= 4; qty++ {
			end := domain.EndDate(start, u, qty)
			count := 0
			for range domain.DaysInRange(start, end) {
				count++
			}
			assert.Equal(t, domain.UnitDays(u)*qty, count, "unit=%s qty=%d", u, qty)
		}
	}
}

func TestDaysInRange_InclusiveAscendingRestartable(t *testing.T) {
	seq := domain.DaysInRange(date(t, "2025-02-27"), date(t, "2025-03-02"))

	var first []string
	for d := range seq {
		first = append(first, domain.FormatDate(d))
	}
	var second []string
	for d := range seq {
		second = append(second, domain.FormatDate(d))
	}

	assert.Equal(t, []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}, first)
	assert.Equal(t, first, second)
}

func TestDaysInRange_EmptyWhenReversed(t *testing.T) {
	count := 0
	for range domain.DaysInRange(date(t, "2025-03-02"), date(t, "2025-03-01")) {
		count++
	}
	assert.Zero(t, count)
}

func TestParseDate_Malformed(t *testing.T) {
	_, err := domain.ParseDate("15/01/2025")
	var rangeErr *domain.InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestMonthsTouched(t *testing.T) {
	months := domain.MonthsTouched(date(t, "2025-01-28"), date(t, "2025-03-02"))
	require.Len(t, months, 3)
	assert.Equal(t, "2025-01-01", domain.FormatDate(months[0]))
	assert.Equal(t, "2025-03-01", domain.FormatDate(months[2]))
}

func TestToday_UsesLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	now := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-09", domain.FormatDate(domain.Today(now, time.UTC)))
	assert.Equal(t, "2025-03-10", domain.FormatDate(domain.Today(now, paris)))
}
