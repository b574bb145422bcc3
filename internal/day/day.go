// Package day provides UTC calendar-day arithmetic over "YYYY-MM-DD" strings.
//
// Day strings are the interchange format; internally days are handled as an
// Index (days since the Unix epoch) so that ordering and subtraction never
// depend on string comparison or the local timezone.
package day

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the calendar-day format used everywhere at the boundary.
const Layout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("invalid range")
)

// Index is a day number counted from 1970-01-01 UTC.
type Index int

// FromTime returns the index of the UTC calendar day containing t.
func FromTime(t time.Time) Index {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Index(midnight.Unix() / 86400)
}

// Parse converts a "YYYY-MM-DD" string to its Index, reading it as UTC midnight.
func Parse(s string) (Index, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return FromTime(t), nil
}

// Time returns UTC midnight of the day.
func (i Index) Time() time.Time {
	return time.Unix(int64(i)*86400, 0).UTC()
}

func (i Index) String() string {
	return i.Time().Format(Layout)
}

// Today returns the UTC calendar day of now.
func Today(now time.Time) string {
	return FromTime(now).String()
}

// Between returns the number of days from a to b (b - a).
func Between(a, b string) (int, error) {
	ai, err := Parse(a)
	if err != nil {
		return 0, err
	}
	bi, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return int(bi - ai), nil
}

// Range lists every day from start to end inclusive in ascending order.
// An inverted range yields an empty slice.
func Range(start, end string) ([]string, error) {
	s, err := Parse(start)
	if err != nil {
		return nil, err
	}
	e, err := Parse(end)
	if err != nil {
		return nil, err
	}
	if e < s {
		return []string{}, nil
	}
	days := make([]string, 0, int(e-s)+1)
	for i := s; i <= e; i++ {
		days = append(days, i.String())
	}
	return days, nil
}

var shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatDisplay renders a day as "Jan, 5th".
func FormatDisplay(s string) (string, error) {
	i, err := Parse(s)
	if err != nil {
		return "", err
	}
	t := i.Time()
	return fmt.Sprintf("%s, %d%s", shortMonths[t.Month()-1], t.Day(), ordinalSuffix(t.Day())), nil
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
