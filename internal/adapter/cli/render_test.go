package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMonth(t *testing.T) {
	// 2025-01-01 is a Wednesday.
	view := &domain.MonthView{ResourceID: "desk-1", Month: "2025-01"}
	for d := 1; d <= 5; d++ {
		day := domain.AvailabilityDay{
			Date:           time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC),
			RemainingUnits: 4,
			Status:         domain.DayAvailable,
		}
		switch d {
		case 1:
			day.Status = domain.DayBlocked
			day.RemainingUnits = 0
		case 3:
			day.Status = domain.DayFull
			day.RemainingUnits = 0
		case 4:
			day.Status = domain.DayLow
			day.RemainingUnits = 1
		}
		view.Days = append(view.Days, day)
	}

	out := RenderMonth(view, true)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "desk-1  2025-01", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Mo    Tu    We"))
	assert.Equal(t, strings.Repeat(" ", 2*cellWidth)+" 1:--  2:4   3:xx  4:1   5:4  ", lines[2])
	assert.Contains(t, lines[3], "blocked")
}

func TestRenderMonthEmpty(t *testing.T) {
	out := RenderMonth(&domain.MonthView{ResourceID: "desk-1", Month: "2025-01"}, true)
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestRenderSweepReport(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	report := &services.SweepReport{
		StartedAt:           start,
		FinishedAt:          start.Add(1500 * time.Millisecond),
		ExpiredHolds:        3,
		DroppedReservations: 1,
		Mismatches: []domain.ReconciliationMismatch{
			{ResourceID: "desk-1", ExternalRef: "ord-9", Detail: "range differs"},
		},
	}

	out := RenderSweepReport(report, true)
	assert.Contains(t, out, "Sweep finished in 1.5s")
	assert.Contains(t, out, "Expired holds: 3")
	assert.Contains(t, out, "Dropped: 1")
	assert.Contains(t, out, "mismatch desk-1 ord-9: range differs")
}
