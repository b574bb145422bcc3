package day

import (
	"fmt"
	"strings"
	"time"
)

type RangeKind string

const (
	RangeWeek  RangeKind = "week"
	RangeMonth RangeKind = "month"
)

// ParseRangeKind accepts "week" or "month" (case-insensitive). Empty means week.
func ParseRangeKind(s string) (RangeKind, error) {
	switch RangeKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", RangeWeek:
		return RangeWeek, nil
	case RangeMonth:
		return RangeMonth, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRange, s)
}

// Span is an inclusive pair of day strings.
type Span struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Days lists every day in the span.
func (s Span) Days() ([]string, error) {
	return Range(s.StartDate, s.EndDate)
}

// DefaultRange returns the span ending today: the last seven days for a week,
// or back one calendar month for a month.
func DefaultRange(kind RangeKind, now time.Time) (Span, error) {
	end := FromTime(now).Time()
	var start time.Time
	switch kind {
	case RangeWeek:
		start = end.AddDate(0, 0, -6)
	case RangeMonth:
		start = end.AddDate(0, -1, 0)
	default:
		return Span{}, fmt.Errorf("%w: %q", ErrInvalidRange, kind)
	}
	return Span{StartDate: start.Format(Layout), EndDate: end.Format(Layout)}, nil
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
