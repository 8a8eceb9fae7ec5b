package service

import (
	"testing"
	"time"

	"FormUp/internal/currency"
)

func latestOf(dates []time.Time) *time.Time {
	var latest *time.Time
	for i := range dates {
		if latest == nil || dates[i].After(*latest) {
			latest = &dates[i]
		}
	}
	return latest
}

func statusRank(s currency.Status) int {
	switch s {
	case currency.StatusExpired:
		return 0
	case currency.StatusExpiringSoon:
		return 1
	default:
		return 2
	}
}

// Deleting a drive log recomputes the last drive date from the remaining
// history. The derived currency may only move backwards: fewer days remaining,
// never a better status.
func TestDeleteRecomputeNeverImprovesCurrency(t *testing.T) {
	now := time.Date(2026, time.August, 26, 8, 0, 0, 0, time.UTC)
	qualifiedOn := now.AddDate(0, 0, -200)
	day := func(daysAgo int) time.Time { return now.AddDate(0, 0, -daysAgo) }

	tests := []struct {
		name       string
		history    []time.Time
		remove     int
		wantDays   int
		wantStatus currency.Status
	}{
		{
			name:       "removing the latest falls back to the previous drive",
			history:    []time.Time{day(80), day(40), day(5)},
			remove:     2,
			wantDays:   90 - 40,
			wantStatus: currency.StatusCurrent,
		},
		{
			name:       "removing an older drive leaves the reference unchanged",
			history:    []time.Time{day(80), day(40), day(5)},
			remove:     0,
			wantDays:   90 - 5,
			wantStatus: currency.StatusCurrent,
		},
		{
			name:       "removing the only drive falls back to the qualification date",
			history:    []time.Time{day(10)},
			remove:     0,
			wantDays:   90 - 200,
			wantStatus: currency.StatusExpired,
		},
		{
			name:       "fallback can cross the warning boundary",
			history:    []time.Time{day(85), day(3)},
			remove:     1,
			wantDays:   90 - 85,
			wantStatus: currency.StatusExpiringSoon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := currency.Derive(qualifiedOn, latestOf(tt.history), now,
				currency.DefaultValidityDays, currency.DefaultWarningDays)

			remaining := make([]time.Time, 0, len(tt.history)-1)
			for i, d := range tt.history {
				if i != tt.remove {
					remaining = append(remaining, d)
				}
			}
			after := currency.Derive(qualifiedOn, latestOf(remaining), now,
				currency.DefaultValidityDays, currency.DefaultWarningDays)

			if after.DaysRemaining != tt.wantDays {
				t.Errorf("days remaining = %d, want %d", after.DaysRemaining, tt.wantDays)
			}
			if after.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", after.Status, tt.wantStatus)
			}
			if after.DaysRemaining > before.DaysRemaining {
				t.Errorf("delete increased days remaining: %d -> %d",
					before.DaysRemaining, after.DaysRemaining)
			}
			if statusRank(after.Status) > statusRank(before.Status) {
				t.Errorf("delete improved status: %s -> %s", before.Status, after.Status)
			}
		})
	}
}
