package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/habitual/internal/model"
)

type HabitStore struct {
	db *sql.DB
}

func NewHabitStore(db *sql.DB) *HabitStore {
	return &HabitStore{db: db}
}

// --- Habit methods ---

func scanHabit(scanner interface{ Scan(...any) error }) (*model.Habit, error) {
	var h model.Habit
	var category sql.NullString
	var archivedAt sql.NullTime

	err := scanner.Scan(
		&h.ID, &h.OwnerID, &h.Name, &h.Frequency, &category,
		&h.CreatedAt, &h.UpdatedAt, &archivedAt,
	)
	if err != nil {
		return nil, err
	}

	if category.Valid {
		h.Category = &category.String
	}
	if archivedAt.Valid {
		t := archivedAt.Time.UTC()
		h.ArchivedAt = &t
	}
	h.CreatedAt = h.CreatedAt.UTC()
	h.UpdatedAt = h.UpdatedAt.UTC()
	return &h, nil
}

const habitCols = `id, owner_id, name, frequency, category, created_at, updated_at, archived_at`

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (s *HabitStore) Create(ownerID, name string, frequency model.Frequency, category *string, createdAt time.Time) (*model.Habit, error) {
	id := uuid.NewString()
	createdAt = createdAt.UTC()

	_, err := s.db.Exec(
		`INSERT INTO habits (id, owner_id, name, frequency, category, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ownerID, name, string(frequency), nullString(category), createdAt, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}
	return s.GetByID(id)
}

func (s *HabitStore) GetByID(id string) (*model.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitCols+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return h, nil
}

// ListActive returns the owner's unarchived habits, newest first.
func (s *HabitStore) ListActive(ownerID string) ([]model.Habit, error) {
	rows, err := s.db.Query(
		`SELECT `+habitCols+` FROM habits WHERE owner_id = ? AND archived_at IS NULL ORDER BY created_at DESC, rowid DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// ListArchived returns the owner's archived habits, most recently archived first.
func (s *HabitStore) ListArchived(ownerID string) ([]model.Habit, error) {
	rows, err := s.db.Query(
		`SELECT `+habitCols+` FROM habits WHERE owner_id = ? AND archived_at IS NOT NULL ORDER BY archived_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list archived habits: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// Update changes the editable fields of an unarchived habit. Archived habits are
// left untouched and returned as stored.
func (s *HabitStore) Update(id, name string, frequency model.Frequency, category *string, updatedAt time.Time) (*model.Habit, error) {
	_, err := s.db.Exec(
		`UPDATE habits SET name = ?, frequency = ?, category = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`,
		name, string(frequency), nullString(category), updatedAt.UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return s.GetByID(id)
}

// Archive stamps archived_at unless the habit is already archived.
func (s *HabitStore) Archive(id string, at time.Time) (*model.Habit, error) {
	at = at.UTC()
	_, err := s.db.Exec(
		`UPDATE habits SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`,
		at, at, id,
	)
	if err != nil {
		return nil, fmt.Errorf("archive habit: %w", err)
	}
	return s.GetByID(id)
}

// --- Check methods ---

func scanCheck(scanner interface{ Scan(...any) error }) (*model.HabitCheck, error) {
	var c model.HabitCheck
	err := scanner.Scan(&c.ID, &c.HabitID, &c.Date, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

const checkCols = `id, habit_id, date, created_at`

// UpsertCheck records a check for the day, returning the existing row if there is one.
func (s *HabitStore) UpsertCheck(habitID, date string) (*model.HabitCheck, error) {
	_, err := s.db.Exec(
		`INSERT INTO habit_checks (habit_id, date) VALUES (?, ?) ON CONFLICT(habit_id, date) DO NOTHING`,
		habitID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("insert check: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+checkCols+` FROM habit_checks WHERE habit_id = ? AND date = ?`, habitID, date)
	c, err := scanCheck(row)
	if err != nil {
		return nil, fmt.Errorf("get check: %w", err)
	}
	return c, nil
}

func (s *HabitStore) DeleteCheck(habitID, date string) error {
	_, err := s.db.Exec(`DELETE FROM habit_checks WHERE habit_id = ? AND date = ?`, habitID, date)
	if err != nil {
		return fmt.Errorf("delete check: %w", err)
	}
	return nil
}

// ListCheckDates returns every checked day for the habit, newest first.
func (s *HabitStore) ListCheckDates(habitID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT date FROM habit_checks WHERE habit_id = ? ORDER BY date DESC`, habitID)
	if err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// ListCompletionsInRange returns (habit, day) pairs for all of the owner's habits
// with a check between startDate and endDate inclusive.
func (s *HabitStore) ListCompletionsInRange(ownerID, startDate, endDate string) ([]model.Completion, error) {
	rows, err := s.db.Query(
		`SELECT c.habit_id, c.date
		 FROM habit_checks c
		 JOIN habits h ON h.id = c.habit_id
		 WHERE h.owner_id = ? AND c.date >= ? AND c.date <= ?
		 ORDER BY c.date ASC, c.habit_id ASC`,
		ownerID, startDate, endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions by range: %w", err)
	}
	defer rows.Close()

	var completions []model.Completion
	for rows.Next() {
		var c model.Completion
		if err := rows.Scan(&c.HabitID, &c.Date); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}
