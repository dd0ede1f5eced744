package util

import (
	"testing"
	"time"
)

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "Jan 24"},
		{time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC), "Dec 24"},
		{time.Date(2009, 9, 1, 0, 0, 0, 0, time.UTC), "Sep 09"},
	}

	for _, tt := range tests {
		if got := MonthLabel(tt.date); got != tt.want {
			t.Errorf("MonthLabel(%s) = %q, want %q", tt.date.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestStartOfMonth(t *testing.T) {
	got := StartOfMonth(time.Date(2025, 3, 17, 14, 30, 0, 0, time.UTC))
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfMonth() = %s, want %s", got, want)
	}
}

func TestSameMonth(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !SameMonth(jan, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected dates in January 2024 to share a month")
	}
	// Same month, different year
	if SameMonth(jan, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected January 2024 and January 2025 to differ")
	}
}

func TestInDateRange(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		t     time.Time
		start time.Time
		end   time.Time
		want  bool
	}{
		{"inside", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), start, end, true},
		{"on start bound", start, start, end, true},
		{"on end bound", end, start, end, true},
		{"before start", time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), start, end, false},
		{"after end", time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), start, end, false},
		{"open bounds", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{}, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InDateRange(tt.t, tt.start, tt.end); got != tt.want {
				t.Errorf("InDateRange() = %v, want %v", got, tt.want)
			}
		})
	}
}
