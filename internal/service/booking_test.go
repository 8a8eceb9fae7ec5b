package service

import (
	"testing"
	"time"

	"FormUp/internal/model/dto"
	"FormUp/pkg/errors"
)

func TestValidateWindow(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	hour := func(h int) time.Time { return now.Add(time.Duration(h) * time.Hour) }

	cases := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"one hour slot", hour(2), hour(3), nil},
		{"max length slot", hour(2), hour(2 + maxBookingHours), nil},
		{"too long", hour(2), hour(3 + maxBookingHours), errors.BookingInvalidWindow},
		{"unaligned start", hour(2).Add(30 * time.Minute), hour(4), errors.BookingInvalidWindow},
		{"unaligned end", hour(2), hour(3).Add(15 * time.Minute), errors.BookingInvalidWindow},
		{"end before start", hour(3), hour(2), errors.BookingInvalidWindow},
		{"zero length", hour(2), hour(2), errors.BookingInvalidWindow},
		{"in the past", hour(-2), hour(-1), errors.BookingInvalidWindow},
		{"starting now", now, hour(1), errors.BookingInvalidWindow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateWindow(tc.start, tc.end, now)
			if err != tc.wantErr {
				t.Fatalf("validateWindow: got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestParseCapacityWindowDefaults(t *testing.T) {
	from, to, err := parseCapacityWindow(&dto.CapacityQuery{})
	if err != nil {
		t.Fatalf("parseCapacityWindow: %v", err)
	}

	if !from.Equal(from.Truncate(time.Hour)) {
		t.Errorf("default from %v is not hour-aligned", from)
	}
	if got := to.Sub(from); got != 7*24*time.Hour {
		t.Errorf("default window: got %v, want 168h", got)
	}
}

func TestParseCapacityWindowBounds(t *testing.T) {
	base := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"explicit valid window", base.Format(time.RFC3339), base.Add(48 * time.Hour).Format(time.RFC3339), false},
		{"inverted", base.Add(time.Hour).Format(time.RFC3339), base.Format(time.RFC3339), true},
		{"too wide", base.Format(time.RFC3339), base.Add(maxCapacityWindow + time.Hour).Format(time.RFC3339), true},
		{"garbage from", "yesterday", base.Format(time.RFC3339), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseCapacityWindow(&dto.CapacityQuery{From: tc.from, To: tc.to})
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
