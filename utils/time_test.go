package utils

import (
	"testing"
	"time"
)

func TestParseRunTime(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"10:30", 630, false},
		{"0:59", 59, false},
		{"12:00", 720, false},
		{" 9:45 ", 585, false},
		{"10:60", 0, true},
		{"10", 0, true},
		{"-1:30", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseRunTime(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRunTime(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRunTime(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRunTime(%q): got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatRunTime(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{630, "10:30"},
		{59, "0:59"},
		{720, "12:00"},
		{-5, "0:00"},
	}

	for _, tc := range cases {
		if got := FormatRunTime(tc.in); got != tc.want {
			t.Errorf("FormatRunTime(%d): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRunTimeRoundTrip(t *testing.T) {
	for _, s := range []string{"8:05", "10:30", "15:00"} {
		secs, err := ParseRunTime(s)
		if err != nil {
			t.Fatalf("ParseRunTime(%q): %v", s, err)
		}
		if got := FormatRunTime(secs); got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("SGT", 8*3600)
	in := time.Date(2026, 3, 15, 23, 45, 0, 0, loc) // 15:45 UTC
	got := DateOnly(in)

	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly: got %v, want %v", got, want)
	}
}
