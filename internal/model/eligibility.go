package model

import "time"

// IneligibilityType says whether an override is open-ended or dated.
type IneligibilityType string

const (
	IneligibilityPermanent IneligibilityType = "permanent"
	IneligibilityTemporary IneligibilityType = "temporary"
)

// Eligibility is a sparse override record: absence implies eligible. An
// ineligible user is excluded from currency tracking regardless of drive
// history, indefinitely or until UntilDate.
type Eligibility struct {
	BaseModel
	UserID            int64             `gorm:"uniqueIndex;not null" json:"user_id"`
	IsEligible        bool              `gorm:"not null;default:true" json:"is_eligible"`
	Reason            string            `gorm:"type:varchar(255);not null;default:''" json:"reason"`
	IneligibilityType IneligibilityType `gorm:"type:varchar(16)" json:"ineligibility_type,omitempty"`
	UntilDate         *time.Time        `gorm:"type:date" json:"until_date,omitempty"`
}

func (Eligibility) TableName() string {
	return "eligibilities"
}

// ActiveAt reports whether the override still suppresses currency tracking at t.
func (e *Eligibility) ActiveAt(t time.Time) bool {
	if e == nil || e.IsEligible {
		return false
	}
	if e.IneligibilityType == IneligibilityTemporary && e.UntilDate != nil {
		return !t.After(*e.UntilDate)
	}
	return true
}
