// Package cli renders engine state for terminals.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/services"
)

const cellWidth = 6

var weekdays = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// RenderMonth draws view as a Monday-first grid. Each cell shows the day of
// month and the remaining units, "--" for blocked days and "xx" for full ones.
func RenderMonth(view *domain.MonthView, noColor bool) string {
	var b strings.Builder
	b.WriteString(stylize(fmt.Sprintf("%s  %s", view.ResourceID, view.Month), noColor, lipgloss.Color("33")))
	b.WriteString("\n")

	header := make([]string, len(weekdays))
	for i, d := range weekdays {
		header[i] = pad(d)
	}
	b.WriteString(stylize(strings.Join(header, ""), noColor, lipgloss.Color("242")))
	b.WriteString("\n")

	if len(view.Days) == 0 {
		return b.String()
	}

	col := mondayIndex(view.Days[0].Date.Weekday())
	b.WriteString(strings.Repeat(" ", col*cellWidth))
	for _, day := range view.Days {
		b.WriteString(renderCell(day, noColor))
		col++
		if col == len(weekdays) {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	b.WriteString(stylize("remaining units per day, -- blocked, xx full", noColor, lipgloss.Color("244")))
	b.WriteString("\n")
	return b.String()
}

func renderCell(day domain.AvailabilityDay, noColor bool) string {
	var units string
	switch day.Status {
	case domain.DayBlocked:
		units = "--"
	case domain.DayFull:
		units = "xx"
	default:
		units = fmt.Sprintf("%d", day.RemainingUnits)
	}
	text := pad(fmt.Sprintf("%2d:%s", day.Date.Day(), units))
	return stylize(text, noColor, statusColor(day.Status))
}

// RenderSweepReport summarises one maintenance sweep.
func RenderSweepReport(report *services.SweepReport, noColor bool) string {
	var b strings.Builder
	elapsed := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)
	b.WriteString(stylize("Sweep finished in "+elapsed.String(), noColor, lipgloss.Color("33")))
	b.WriteString("\n")
	line := fmt.Sprintf("Expired holds: %d  Orphaned holds: %d  Dropped: %d  Normalized: %d  Purged intents: %d",
		report.ExpiredHolds, report.OrphanedHolds, report.DroppedReservations,
		report.NormalizedReservations, report.PurgedIntents)
	b.WriteString(stylize(line, noColor, lipgloss.Color("242")))
	b.WriteString("\n")
	for _, m := range report.Mismatches {
		b.WriteString(stylize("mismatch "+m.ResourceID+" "+m.ExternalRef+": "+m.Detail, noColor, lipgloss.Color("196")))
		b.WriteString("\n")
	}
	return b.String()
}

func statusColor(status domain.DayStatus) lipgloss.Color {
	switch status {
	case domain.DayAvailable:
		return lipgloss.Color("42")
	case domain.DayLow:
		return lipgloss.Color("220")
	case domain.DayFull:
		return lipgloss.Color("196")
	default:
		return lipgloss.Color("240")
	}
}

func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

func pad(s string) string {
	if len(s) >= cellWidth {
		return s
	}
	return s + strings.Repeat(" ", cellWidth-len(s))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
