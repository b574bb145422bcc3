package habit

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/model"
)

// Store persists habits and their checks.
type Store interface {
	GetByID(id string) (*model.Habit, error)
	ListActive(ownerID string) ([]model.Habit, error)
	ListCheckDates(habitID string) ([]string, error)
	ListCompletionsInRange(ownerID, startDate, endDate string) ([]model.Completion, error)
	UpsertCheck(habitID, date string) (*model.HabitCheck, error)
	DeleteCheck(habitID, date string) error
	Create(ownerID, name string, frequency model.Frequency, category *string, createdAt time.Time) (*model.Habit, error)
	Update(id, name string, frequency model.Frequency, category *string, updatedAt time.Time) (*model.Habit, error)
	Archive(id string, at time.Time) (*model.Habit, error)
}

type HabitWithStatus struct {
	model.Habit
	CheckedToday bool `json:"checked_today"`
}

// Dashboard is everything the dashboard page shows for one owner.
type Dashboard struct {
	Today      string             `json:"today"`
	Range      day.RangeKind      `json:"range"`
	Span       day.Span           `json:"span"`
	Habits     []HabitWithStatus  `json:"habits"`
	Stats      map[string]Stats   `json:"stats"`
	History    []model.Completion `json:"history"`
	Heatmap    Heatmap            `json:"heatmap"`
	Categories []CategoryProgress `json:"categories"`
}

type Service struct {
	store  Store
	clock  day.Clock
	logger *slog.Logger
}

func NewService(store Store, clock day.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = day.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, clock: clock, logger: logger}
}

func (s *Service) now() time.Time {
	return s.clock.Now().UTC()
}

// owned loads a habit and hides it from anyone but its owner.
func (s *Service) owned(ownerID, id string) (*model.Habit, error) {
	h, err := s.store.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load habit: %w", err)
	}
	if h == nil || h.OwnerID != ownerID {
		return nil, &NotFoundError{ID: id}
	}
	return h, nil
}

func (s *Service) List(ownerID string) ([]model.Habit, error) {
	habits, err := s.store.ListActive(ownerID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	if habits == nil {
		habits = []model.Habit{}
	}
	return habits, nil
}

// ListWithTodayStatus returns active habits flagged with whether they were checked today.
func (s *Service) ListWithTodayStatus(ownerID string) ([]HabitWithStatus, error) {
	habits, err := s.List(ownerID)
	if err != nil {
		return nil, err
	}
	today := day.Today(s.now())
	checks, err := s.store.ListCompletionsInRange(ownerID, today, today)
	if err != nil {
		return nil, fmt.Errorf("list today's checks: %w", err)
	}
	return withTodayStatus(habits, checks, today), nil
}

func withTodayStatus(habits []model.Habit, completions []model.Completion, today string) []HabitWithStatus {
	checked := make(map[string]bool)
	for _, c := range completions {
		if c.Date == today {
			checked[c.HabitID] = true
		}
	}
	out := make([]HabitWithStatus, len(habits))
	for i, h := range habits {
		out[i] = HabitWithStatus{Habit: h, CheckedToday: checked[h.ID]}
	}
	return out
}

func (s *Service) Get(ownerID, id string) (*model.Habit, error) {
	return s.owned(ownerID, id)
}

func (s *Service) Create(ownerID string, in Input) (*model.Habit, error) {
	valid, err := Validate(in)
	if err != nil {
		return nil, err
	}
	h, err := s.store.Create(ownerID, valid.Name, valid.Frequency, valid.Category, s.now())
	if err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return h, nil
}

func (s *Service) Update(ownerID, id string, in Input) (*model.Habit, error) {
	h, err := s.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	if h.Archived() {
		return nil, &StateConflictError{ID: id, Reason: "archived habits cannot be updated"}
	}
	valid, err := Validate(in)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.Update(id, valid.Name, valid.Frequency, valid.Category, s.now())
	if err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	// Archived between the load and the guarded update.
	if updated == nil || updated.Archived() {
		return nil, &StateConflictError{ID: id, Reason: "archived habits cannot be updated"}
	}
	return updated, nil
}

// Archive soft-deletes a habit. Archiving an archived habit returns it unchanged.
func (s *Service) Archive(ownerID, id string) (*model.Habit, error) {
	h, err := s.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	if h.Archived() {
		s.logger.Debug("habit already archived", "habit_id", id)
		return h, nil
	}
	archived, err := s.store.Archive(id, s.now())
	if err != nil {
		return nil, fmt.Errorf("archive habit: %w", err)
	}
	return archived, nil
}

// Check marks the habit done for today's UTC day. Repeated calls return the existing check.
func (s *Service) Check(ownerID, id string) (*model.HabitCheck, error) {
	h, err := s.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	if h.Archived() {
		return nil, &StateConflictError{ID: id, Reason: "archived habits cannot be checked"}
	}
	check, err := s.store.UpsertCheck(id, day.Today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("check habit: %w", err)
	}
	return check, nil
}

// Uncheck removes today's check, if any.
func (s *Service) Uncheck(ownerID, id string) error {
	if _, err := s.owned(ownerID, id); err != nil {
		return err
	}
	if err := s.store.DeleteCheck(id, day.Today(s.now())); err != nil {
		return fmt.Errorf("uncheck habit: %w", err)
	}
	return nil
}

func (s *Service) Stats(ownerID, id string) (Stats, error) {
	h, err := s.owned(ownerID, id)
	if err != nil {
		return Stats{}, err
	}
	return s.statsFor(*h)
}

func (s *Service) statsFor(h model.Habit) (Stats, error) {
	dates, err := s.store.ListCheckDates(h.ID)
	if err != nil {
		return Stats{}, fmt.Errorf("list checks for %s: %w", h.ID, err)
	}
	return ComputeStats(h, dates, s.now()), nil
}

// CompletionHistory returns the owner's (habit, day) completions within [startDate, endDate].
func (s *Service) CompletionHistory(ownerID, startDate, endDate string) ([]model.Completion, error) {
	if _, err := day.Parse(startDate); err != nil {
		return nil, &ValidationError{Field: "start", Message: "invalid start date"}
	}
	if _, err := day.Parse(endDate); err != nil {
		return nil, &ValidationError{Field: "end", Message: "invalid end date"}
	}
	completions, err := s.store.ListCompletionsInRange(ownerID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	if completions == nil {
		completions = []model.Completion{}
	}
	return completions, nil
}

// Span returns the default span of kind ending today.
func (s *Service) Span(kind day.RangeKind) (day.Span, error) {
	span, err := day.DefaultRange(kind, s.now())
	if err != nil {
		if errors.Is(err, day.ErrInvalidRange) {
			return day.Span{}, &ValidationError{Field: "range", Message: "invalid range"}
		}
		return day.Span{}, err
	}
	return span, nil
}

// Dashboard assembles today's status, stats, heatmap and category rollup for the given range.
func (s *Service) Dashboard(ownerID string, kind day.RangeKind) (*Dashboard, error) {
	now := s.now()
	span, err := s.Span(kind)
	if err != nil {
		return nil, err
	}

	habits, err := s.List(ownerID)
	if err != nil {
		return nil, err
	}
	history, err := s.CompletionHistory(ownerID, span.StartDate, span.EndDate)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]Stats, len(habits))
	for _, h := range habits {
		st, err := s.statsFor(h)
		if err != nil {
			return nil, err
		}
		stats[h.ID] = st
	}

	today := day.Today(now)
	return &Dashboard{
		Today:      today,
		Range:      kind,
		Span:       span,
		Habits:     withTodayStatus(habits, history, today),
		Stats:      stats,
		History:    history,
		Heatmap:    BuildHeatmap(habits, history, span.StartDate, span.EndDate),
		Categories: BuildCategoryRollup(habits, stats),
	}, nil
}
