package currency

import (
	"testing"
	"time"
)

var now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func TestExpiredOneDayPastWindow(t *testing.T) {
	last := daysAgo(91)
	d := Derive(daysAgo(400), &last, now, 90, 30)

	if d.DaysRemaining != -1 {
		t.Fatalf("days remaining: got %d, want -1", d.DaysRemaining)
	}
	if d.Status != StatusExpired {
		t.Fatalf("status: got %s, want %s", d.Status, StatusExpired)
	}
}

func TestStatusBoundaries(t *testing.T) {
	cases := []struct {
		elapsedDays int
		wantDays    int
		wantStatus  Status
	}{
		{0, 90, StatusCurrent},
		{59, 31, StatusCurrent},
		{60, 30, StatusCurrent},       // exactly warningDays remaining stays CURRENT
		{61, 29, StatusExpiringSoon},  // first day inside the warning window
		{90, 0, StatusExpiringSoon},   // zero remaining is not yet expired
		{91, -1, StatusExpired},       // first negative day
		{200, -110, StatusExpired},
	}
	for _, c := range cases {
		last := daysAgo(c.elapsedDays)
		d := Derive(daysAgo(500), &last, now, 90, 30)
		if d.DaysRemaining != c.wantDays {
			t.Errorf("elapsed %d: days remaining got %d, want %d", c.elapsedDays, d.DaysRemaining, c.wantDays)
		}
		if d.Status != c.wantStatus {
			t.Errorf("elapsed %d: status got %s, want %s", c.elapsedDays, d.Status, c.wantStatus)
		}
	}
}

func TestDaysRemainingMonotonicInElapsedTime(t *testing.T) {
	last := daysAgo(10)
	prev := Derive(daysAgo(500), &last, now, 90, 30).DaysRemaining

	for i := 1; i <= 120; i++ {
		got := Derive(daysAgo(500), &last, now.AddDate(0, 0, i), 90, 30).DaysRemaining
		if got >= prev {
			t.Fatalf("days remaining did not decrease at day %d: %d -> %d", i, prev, got)
		}
		prev = got
	}
}

func TestStatusTransitionsInOrder(t *testing.T) {
	// As time passes the status must only move CURRENT -> EXPIRING_SOON -> EXPIRED.
	rank := map[Status]int{StatusCurrent: 0, StatusExpiringSoon: 1, StatusExpired: 2}

	last := daysAgo(0)
	prev := StatusCurrent
	for i := 0; i <= 120; i++ {
		got := Derive(daysAgo(500), &last, now.AddDate(0, 0, i), 90, 30).Status
		if rank[got] < rank[prev] {
			t.Fatalf("status moved backwards at day %d: %s -> %s", i, prev, got)
		}
		prev = got
	}
	if prev != StatusExpired {
		t.Fatalf("status after 120 days: got %s, want %s", prev, StatusExpired)
	}
}

func TestFallsBackToQualificationDate(t *testing.T) {
	d := Derive(daysAgo(30), nil, now, 90, 30)

	if d.DaysRemaining != 60 {
		t.Fatalf("days remaining: got %d, want 60", d.DaysRemaining)
	}
	if d.Status != StatusCurrent {
		t.Fatalf("status: got %s, want %s", d.Status, StatusCurrent)
	}
	if !d.ReferenceDate.Equal(time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("reference date: got %s", d.ReferenceDate)
	}
}

func TestTimeOfDayDoesNotShiftDays(t *testing.T) {
	last := time.Date(2026, 7, 31, 23, 59, 0, 0, time.UTC)
	early := time.Date(2026, 8, 1, 0, 1, 0, 0, time.UTC)

	// Still one whole calendar day apart regardless of clock times.
	if got := DaysRemaining(last, early, 90); got != 89 {
		t.Fatalf("days remaining: got %d, want 89", got)
	}
}
