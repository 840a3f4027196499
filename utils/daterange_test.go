package utils

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, from, to string) DateRange {
	t.Helper()
	dr, err := ParseDateRange(from, to)
	if err != nil {
		t.Fatalf("ParseDateRange(%q, %q): %v", from, to, err)
	}
	return dr
}

func TestNewDateRangeTruncatesToMidnightUTC(t *testing.T) {
	from := time.Date(2024, 6, 5, 14, 30, 12, 0, time.UTC)
	to := time.Date(2024, 6, 7, 1, 0, 0, 0, time.UTC)

	dr, err := NewDateRange(from, to)
	if err != nil {
		t.Fatalf("NewDateRange: %v", err)
	}
	if !dr.From.Equal(day(2024, 6, 5)) {
		t.Errorf("From = %v, want midnight 2024-06-05", dr.From)
	}
	if !dr.To.Equal(day(2024, 6, 7)) {
		t.Errorf("To = %v, want midnight 2024-06-07", dr.To)
	}
}

func TestNewDateRangeRejectsReversed(t *testing.T) {
	_, err := NewDateRange(day(2024, 6, 10), day(2024, 6, 5))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestParseDateRangeRejectsMalformed(t *testing.T) {
	for _, tc := range []struct{ from, to string }{
		{"06-05-2024", "2024-06-10"},
		{"2024-06-05", "tomorrow"},
		{"", "2024-06-10"},
		{"2024-13-01", "2024-13-02"},
	} {
		if _, err := ParseDateRange(tc.from, tc.to); err == nil {
			t.Errorf("ParseDateRange(%q, %q) accepted malformed input", tc.from, tc.to)
		}
	}
}

func TestParseDateRangeSingleDay(t *testing.T) {
	dr := mustRange(t, "2024-06-05", "2024-06-05")
	if dr.Days() != 1 {
		t.Errorf("Days() = %d, want 1", dr.Days())
	}
	if got := dr.Dates(); len(got) != 1 || !got[0].Equal(day(2024, 6, 5)) {
		t.Errorf("Dates() = %v, want [2024-06-05]", got)
	}
}

func TestOverlaps(t *testing.T) {
	base := mustRange(t, "2024-06-05", "2024-06-10")

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"identical", mustRange(t, "2024-06-05", "2024-06-10"), true},
		{"contained", mustRange(t, "2024-06-06", "2024-06-08"), true},
		{"overlap left", mustRange(t, "2024-06-01", "2024-06-05"), true},
		{"shared boundary", mustRange(t, "2024-06-10", "2024-06-12"), true},
		{"disjoint before", mustRange(t, "2024-06-01", "2024-06-04"), false},
		{"disjoint after", mustRange(t, "2024-06-11", "2024-06-15"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", base, tc.other, got, tc.want)
			}
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v (symmetry)", tc.other, base, got, tc.want)
			}
		})
	}
}

func TestWithin(t *testing.T) {
	window := mustRange(t, "2024-06-01", "2024-06-30")

	if !mustRange(t, "2024-06-01", "2024-06-30").Within(window) {
		t.Error("full window should be within itself")
	}
	if !mustRange(t, "2024-06-05", "2024-06-10").Within(window) {
		t.Error("inner range should be within window")
	}
	if mustRange(t, "2024-05-31", "2024-06-10").Within(window) {
		t.Error("range starting before window should not be within")
	}
	if mustRange(t, "2024-06-25", "2024-07-01").Within(window) {
		t.Error("range ending after window should not be within")
	}
}

func TestDatesInclusiveAscending(t *testing.T) {
	dr := mustRange(t, "2024-06-05", "2024-06-10")
	dates := dr.Dates()
	if len(dates) != 6 {
		t.Fatalf("len(Dates()) = %d, want 6", len(dates))
	}
	for i, d := range dates {
		want := day(2024, 6, 5+i)
		if !d.Equal(want) {
			t.Errorf("Dates()[%d] = %v, want %v", i, d, want)
		}
	}
}
