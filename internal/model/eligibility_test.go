package model

import (
	"testing"
	"time"
)

func TestEligibilityActiveAt(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	until := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		e    *Eligibility
		want bool
	}{
		{"nil record reads eligible", nil, false},
		{"eligible record", &Eligibility{IsEligible: true}, false},
		{"permanent exclusion", &Eligibility{IsEligible: false, IneligibilityType: IneligibilityPermanent}, true},
		{"temporary still running", &Eligibility{IsEligible: false, IneligibilityType: IneligibilityTemporary, UntilDate: &until}, true},
		{"temporary lapsed", &Eligibility{IsEligible: false, IneligibilityType: IneligibilityTemporary, UntilDate: &past}, false},
		{"temporary without end date stays active", &Eligibility{IsEligible: false, IneligibilityType: IneligibilityTemporary}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.e.ActiveAt(now); got != tc.want {
				t.Fatalf("ActiveAt: got %v, want %v", got, tc.want)
			}
		})
	}
}
