package util

import "time"

// MonthLabelLayout renders a short month name and two-digit year, e.g. "Jan 24"
const MonthLabelLayout = "Jan 06"

// MonthLabel returns the chart label for the calendar month containing t
func MonthLabel(t time.Time) string {
	return t.Format(MonthLabelLayout)
}

// StartOfMonth returns midnight on the first day of t's month, in t's location
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameMonth reports whether a and b fall in the same calendar month and year
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// InDateRange reports whether t lies within [start, end]. A zero bound is open.
func InDateRange(t, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && t.After(end) {
		return false
	}
	return true
}
