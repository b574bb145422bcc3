package model

import "time"

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

// Frequencies lists every accepted frequency.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyCustom}

type Habit struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Name       string     `json:"name"`
	Frequency  Frequency  `json:"frequency"`
	Category   *string    `json:"category"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ArchivedAt *time.Time `json:"archived_at"`
}

func (h Habit) Archived() bool {
	return h.ArchivedAt != nil
}

// HabitCheck records that a habit was completed on a UTC calendar day.
type HabitCheck struct {
	ID        int64     `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// Completion is a (habit, day) pair.
type Completion struct {
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
}
