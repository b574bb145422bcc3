package day

import (
	"errors"
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), "2026-02-05"},
		{time.Date(2026, 2, 5, 23, 59, 59, 0, time.UTC), "2026-02-05"},
		// 20:00 in New York on Feb 5 is already Feb 6 in UTC
		{time.Date(2026, 2, 5, 20, 0, 0, 0, time.FixedZone("EST", -5*3600)), "2026-02-06"},
	}
	for _, tt := range tests {
		if got := Today(tt.now); got != tt.want {
			t.Errorf("Today(%v) = %q, want %q", tt.now, got, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"1970-01-01", "2024-02-29", "2026-12-31", "1969-12-31"} {
		i, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if i.String() != s {
			t.Errorf("Parse(%q).String() = %q", s, i.String())
		}
	}

	epoch, _ := Parse("1970-01-01")
	if epoch != 0 {
		t.Errorf("epoch index = %d, want 0", epoch)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "2026-13-01", "2026-02-30", "02/05/2026", "2026-2-5"} {
		_, err := Parse(s)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidDate", s, err)
		}
	}
}

func TestBetween(t *testing.T) {
	n, err := Between("2026-02-27", "2026-03-02")
	if err != nil {
		t.Fatalf("between: %v", err)
	}
	if n != 3 {
		t.Errorf("Between = %d, want 3", n)
	}

	n, _ = Between("2026-03-02", "2026-02-27")
	if n != -3 {
		t.Errorf("Between reversed = %d, want -3", n)
	}
}

func TestRangeSingleDay(t *testing.T) {
	got, err := Range("2026-02-05", "2026-02-05")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 1 || got[0] != "2026-02-05" {
		t.Errorf("Range(d, d) = %v, want [2026-02-05]", got)
	}
}

func TestRangeLength(t *testing.T) {
	tests := []struct {
		start, end string
	}{
		{"2026-01-01", "2026-01-07"},
		{"2024-02-25", "2024-03-02"},
		{"2025-12-30", "2026-01-02"},
		{"2026-01-01", "2026-12-31"},
	}
	for _, tt := range tests {
		got, err := Range(tt.start, tt.end)
		if err != nil {
			t.Fatalf("Range(%s, %s): %v", tt.start, tt.end, err)
		}
		diff, _ := Between(tt.start, tt.end)
		if len(got) != diff+1 {
			t.Errorf("Range(%s, %s) len = %d, want %d", tt.start, tt.end, len(got), diff+1)
		}
		if got[0] != tt.start || got[len(got)-1] != tt.end {
			t.Errorf("Range(%s, %s) bounds = %s..%s", tt.start, tt.end, got[0], got[len(got)-1])
		}
		for i := 1; i < len(got); i++ {
			if n, _ := Between(got[i-1], got[i]); n != 1 {
				t.Fatalf("Range(%s, %s) not consecutive at %d: %s -> %s", tt.start, tt.end, i, got[i-1], got[i])
			}
		}
	}
}

func TestRangeLeapDay(t *testing.T) {
	got, _ := Range("2024-02-28", "2024-03-01")
	want := []string{"2024-02-28", "2024-02-29", "2024-03-01"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRangeInverted(t *testing.T) {
	got, err := Range("2026-02-05", "2026-02-01")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("inverted range = %v, want empty", got)
	}
}

func TestRangeInvalid(t *testing.T) {
	if _, err := Range("nope", "2026-02-01"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
	if _, err := Range("2026-02-01", ""); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-01-01", "Jan, 1st"},
		{"2026-02-02", "Feb, 2nd"},
		{"2026-03-03", "Mar, 3rd"},
		{"2026-04-04", "Apr, 4th"},
		{"2026-05-11", "May, 11th"},
		{"2026-06-12", "Jun, 12th"},
		{"2026-07-13", "Jul, 13th"},
		{"2026-08-21", "Aug, 21st"},
		{"2026-09-22", "Sep, 22nd"},
		{"2026-10-23", "Oct, 23rd"},
		{"2026-11-30", "Nov, 30th"},
		{"2026-12-31", "Dec, 31st"},
	}
	for _, tt := range tests {
		got, err := FormatDisplay(tt.in)
		if err != nil {
			t.Fatalf("FormatDisplay(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("FormatDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDisplayInvalid(t *testing.T) {
	if _, err := FormatDisplay("yesterday"); err == nil {
		t.Error("expected error for malformed date")
	}
}
