package schema

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the canonical day representation used for bucket keys.
const DateLayout = "2006-01-02"

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp bounds v to [lo, hi]. NaN is returned unchanged.
func Clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// TermForDate maps a calendar month to a school term: Jan-Apr Term 1,
// May-Aug Term 2, Sep-Dec Term 3.
func TermForDate(t time.Time) string {
	switch m := t.Month(); {
	case m <= time.April:
		return "Term 1"
	case m <= time.August:
		return "Term 2"
	default:
		return "Term 3"
	}
}

// DateKey returns the day bucket key for t.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// NameKey folds a display name for matching: lower-case with collapsed whitespace.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
