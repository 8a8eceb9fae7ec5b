package cache

import (
	"testing"
	"time"
)

// The increment path and the limit check must resolve to the same counter key
// for any instant within a month, and different keys across months.
func TestMonthlyReminderKeyAgreement(t *testing.T) {
	first := time.Date(2026, time.August, 1, 0, 0, 1, 0, time.UTC)
	last := time.Date(2026, time.August, 31, 23, 59, 59, 0, time.UTC)
	next := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	if a, b := monthlyReminderKey(42, first), monthlyReminderKey(42, last); a != b {
		t.Errorf("keys differ within one month: %q vs %q", a, b)
	}
	if a, b := monthlyReminderKey(42, last), monthlyReminderKey(42, next); a == b {
		t.Errorf("key %q did not roll over at month boundary", a)
	}
	if a, b := monthlyReminderKey(42, first), monthlyReminderKey(43, first); a == b {
		t.Errorf("key %q shared between users", a)
	}
}

func TestMonthKeyFormat(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC), "2026-08"},
		{time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC), "2026-12"},
		{time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), "2027-01"},
	}

	for _, tt := range tests {
		if got := monthKey(tt.at); got != tt.want {
			t.Errorf("monthKey(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}
