package dto

// UpsertEligibilityRequest sets or clears a user's eligibility override.
type UpsertEligibilityRequest struct {
	IsEligible        bool    `json:"is_eligible"`
	Reason            string  `json:"reason"`
	IneligibilityType string  `json:"ineligibility_type"` // permanent | temporary
	UntilDate         *string `json:"until_date"`         // YYYY-MM-DD, temporary only
}

// EligibilityItem is the override state; absence of a record reads as eligible.
type EligibilityItem struct {
	UserID            string  `json:"user_id"`
	IsEligible        bool    `json:"is_eligible"`
	Reason            string  `json:"reason,omitempty"`
	IneligibilityType string  `json:"ineligibility_type,omitempty"`
	UntilDate         *string `json:"until_date,omitempty"`
}
