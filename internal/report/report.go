// Package report renders a habit dashboard for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/habit"
)

const barWidth = 20

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	nameStyle    = lipgloss.NewStyle().Width(18)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	filledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Render lays out today's checklist, the heatmap and the category rollup.
func Render(d *habit.Dashboard) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Habits: %s (%s to %s)", d.Range, d.Span.StartDate, d.Span.EndDate)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Today"))
	b.WriteString("\n")
	if len(d.Habits) == 0 {
		b.WriteString(mutedStyle.Render("No habits yet."))
		b.WriteString("\n")
	}
	for _, h := range d.Habits {
		mark := "[ ]"
		if h.CheckedToday {
			mark = filledStyle.Render("[x]")
		}
		s := d.Stats[h.ID]
		b.WriteString(fmt.Sprintf("%s %s %s\n", mark, nameStyle.Render(h.Name),
			mutedStyle.Render(fmt.Sprintf("streak %d, %d%%", s.Streak, habit.NewRing(s.CompletionRate, habit.DefaultRingRadius).Percent))))
	}

	b.WriteString(sectionStyle.Render("Heatmap"))
	b.WriteString("\n")
	b.WriteString(renderHeatmap(d.Heatmap))

	b.WriteString(sectionStyle.Render("Categories"))
	b.WriteString("\n")
	if len(d.Categories) == 0 {
		b.WriteString(mutedStyle.Render("No categories."))
		b.WriteString("\n")
	}
	for _, c := range d.Categories {
		b.WriteString(fmt.Sprintf("%s %s %3d%%\n", nameStyle.Render(c.Category), bar(c.Rate), c.Ring.Percent))
	}
	return b.String()
}

func renderHeatmap(hm habit.Heatmap) string {
	if len(hm.Dates) == 0 {
		return mutedStyle.Render("No days in range.") + "\n"
	}

	var b strings.Builder
	first, _ := day.FormatDisplay(hm.Dates[0])
	last, _ := day.FormatDisplay(hm.Dates[len(hm.Dates)-1])
	b.WriteString(nameStyle.Render("") + " " + mutedStyle.Render(first+" .. "+last) + "\n")

	for _, row := range hm.Rows {
		var cells strings.Builder
		for _, c := range row.Cells {
			if c.Filled {
				cells.WriteString(filledStyle.Render("■"))
			} else {
				cells.WriteString(emptyStyle.Render("·"))
			}
		}
		b.WriteString(nameStyle.Render(row.Name) + " " + cells.String() + "\n")
	}
	return b.String()
}

func bar(rate float64) string {
	n := habit.NewRing(rate, habit.DefaultRingRadius).Percent * barWidth / 100
	return filledStyle.Render(strings.Repeat("█", n)) + emptyStyle.Render(strings.Repeat("░", barWidth-n))
}
