package habit

import (
	"math"
	"sort"
	"time"

	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/model"
)

type Stats struct {
	Streak              int     `json:"streak"`
	TotalCompletions    int     `json:"total_completions"`
	CompletionRate      float64 `json:"completion_rate"`
	ExpectedOccurrences int     `json:"expected_occurrences"`
}

// ComputeStats derives a habit's streak and completion rate from its check dates.
// Malformed or repeated dates are ignored.
func ComputeStats(h model.Habit, checkDates []string, now time.Time) Stats {
	days := parseDays(checkDates)
	expected := ExpectedOccurrences(h.Frequency, ElapsedDays(h.CreatedAt, now))
	total := countDistinct(days)
	return Stats{
		Streak:              streak(days, day.FromTime(now)),
		TotalCompletions:    total,
		CompletionRate:      CompletionRate(total, expected),
		ExpectedOccurrences: expected,
	}
}

// Streak counts consecutive checked days ending today. A habit not checked
// today has no streak, even if yesterday was checked.
func Streak(checkDates []string, today day.Index) int {
	return streak(parseDays(checkDates), today)
}

func streak(days []day.Index, today day.Index) int {
	if len(days) == 0 {
		return 0
	}
	sorted := make([]day.Index, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	if sorted[0] != today {
		return 0
	}

	n := 1
	for i := 1; i < len(sorted); i++ {
		switch sorted[i-1] - sorted[i] {
		case 0:
			continue
		case 1:
			n++
		default:
			return n
		}
	}
	return n
}

// ElapsedDays counts the days since createdAt, with the creation day itself counting as one.
func ElapsedDays(createdAt, now time.Time) int {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed/(24*time.Hour)) + 1
}

// ExpectedOccurrences is the number of completions a habit should have after elapsedDays.
// Weekly habits expect one per started week; daily and custom habits one per day.
func ExpectedOccurrences(freq model.Frequency, elapsedDays int) int {
	if freq == model.FrequencyWeekly {
		return max(int(math.Ceil(float64(elapsedDays)/7)), 1)
	}
	return max(elapsedDays, 1)
}

// CompletionRate returns total/expected clamped to [0, 1].
func CompletionRate(total, expected int) float64 {
	if expected <= 0 || total <= 0 {
		return 0
	}
	return math.Min(float64(total)/float64(expected), 1)
}

func parseDays(dates []string) []day.Index {
	days := make([]day.Index, 0, len(dates))
	for _, d := range dates {
		i, err := day.Parse(d)
		if err != nil {
			continue
		}
		days = append(days, i)
	}
	return days
}

func countDistinct(days []day.Index) int {
	seen := make(map[day.Index]struct{}, len(days))
	for _, d := range days {
		seen[d] = struct{}{}
	}
	return len(seen)
}
