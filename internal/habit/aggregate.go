package habit

import (
	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/model"
)

// Uncategorized groups habits without a category. It is never stored.
const Uncategorized = "Uncategorized"

type HeatmapCell struct {
	Date   string `json:"date"`
	Filled bool   `json:"filled"`
}

type HeatmapRow struct {
	HabitID string        `json:"habit_id"`
	Name    string        `json:"name"`
	Cells   []HeatmapCell `json:"cells"`
}

type Heatmap struct {
	Dates []string     `json:"dates"`
	Rows  []HeatmapRow `json:"rows"`
}

type completionKey struct {
	habitID string
	day     day.Index
}

// BuildHeatmap lays out one row per habit and one cell per day in [startDate, endDate].
// A cell is filled iff its (habit, day) pair is in completions. A malformed or
// inverted range produces rows without cells.
func BuildHeatmap(habits []model.Habit, completions []model.Completion, startDate, endDate string) Heatmap {
	dates, err := day.Range(startDate, endDate)
	if err != nil {
		dates = []string{}
	}

	done := make(map[completionKey]struct{}, len(completions))
	for _, c := range completions {
		i, err := day.Parse(c.Date)
		if err != nil {
			continue
		}
		done[completionKey{habitID: c.HabitID, day: i}] = struct{}{}
	}

	indexes := make([]day.Index, len(dates))
	for i, d := range dates {
		indexes[i], _ = day.Parse(d)
	}

	rows := make([]HeatmapRow, 0, len(habits))
	for _, h := range habits {
		cells := make([]HeatmapCell, len(dates))
		for i, d := range dates {
			_, filled := done[completionKey{habitID: h.ID, day: indexes[i]}]
			cells[i] = HeatmapCell{Date: d, Filled: filled}
		}
		rows = append(rows, HeatmapRow{HabitID: h.ID, Name: h.Name, Cells: cells})
	}
	return Heatmap{Dates: dates, Rows: rows}
}

type CategoryProgress struct {
	Category         string   `json:"category"`
	HabitIDs         []string `json:"habit_ids"`
	TotalCompletions int      `json:"total_completions"`
	ExpectedDays     int      `json:"expected_days"`
	Rate             float64  `json:"rate"`
	Ring             Ring     `json:"ring"`
}

// BuildCategoryRollup sums completions and expected occurrences per category,
// in the order categories first appear in habits. Habits without an entry in
// statsByHabitID count toward neither sum.
func BuildCategoryRollup(habits []model.Habit, statsByHabitID map[string]Stats) []CategoryProgress {
	var out []CategoryProgress
	index := make(map[string]int)

	for _, h := range habits {
		key := CategoryKey(h)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, CategoryProgress{Category: key})
		}
		entry := &out[i]
		entry.HabitIDs = append(entry.HabitIDs, h.ID)

		s, ok := statsByHabitID[h.ID]
		if !ok {
			continue
		}
		entry.TotalCompletions += s.TotalCompletions
		entry.ExpectedDays += s.ExpectedOccurrences
	}

	for i := range out {
		out[i].Rate = CompletionRate(out[i].TotalCompletions, out[i].ExpectedDays)
		out[i].Ring = NewRing(out[i].Rate, DefaultRingRadius)
	}
	return out
}

// CategoryKey returns the display grouping for h.
func CategoryKey(h model.Habit) string {
	if h.Category == nil || *h.Category == "" {
		return Uncategorized
	}
	return *h.Category
}
