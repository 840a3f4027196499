package utils

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for every calendar date in the API.
const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("daterange: from must not be after to")

// DateRange is an inclusive calendar interval [From, To]. Both endpoints are
// midnight-UTC dates; a one-day stay has From == To.
type DateRange struct {
	From time.Time
	To   time.Time
}

func NewDateRange(from, to time.Time) (DateRange, error) {
	dr := DateRange{From: TruncateToDay(from), To: TruncateToDay(to)}
	if dr.From.After(dr.To) {
		return DateRange{}, ErrInvalidRange
	}
	return dr, nil
}

// ParseDateRange builds a range from two YYYY-MM-DD strings.
func ParseDateRange(from, to string) (DateRange, error) {
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		return DateRange{}, fmt.Errorf("daterange: invalid date %q: %w", from, err)
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		return DateRange{}, fmt.Errorf("daterange: invalid date %q: %w", to, err)
	}
	return NewDateRange(f, t)
}

func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the two closed intervals share at least one date.
// Ranges that touch on a single boundary date do overlap: that date is
// occupied in both.
func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.From.After(other.To) && !dr.To.Before(other.From)
}

// Within reports whether dr lies entirely inside window.
func (dr DateRange) Within(window DateRange) bool {
	return !dr.From.Before(window.From) && !dr.To.After(window.To)
}

// Dates returns every calendar date in [From, To], ascending.
func (dr DateRange) Dates() []time.Time {
	out := make([]time.Time, 0, dr.Days())
	for d := dr.From; !d.After(dr.To); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Days is the number of calendar dates covered, endpoints included.
func (dr DateRange) Days() int {
	return int(dr.To.Sub(dr.From).Hours()/24) + 1
}

func (dr DateRange) String() string {
	return dr.From.Format(DateLayout) + ".." + dr.To.Format(DateLayout)
}
