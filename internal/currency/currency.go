// Package currency derives driving-currency status from a qualification's
// drive history. Status and days remaining are computed at read time and are
// never stored.
package currency

import "time"

type Status string

const (
	StatusCurrent      Status = "CURRENT"
	StatusExpiringSoon Status = "EXPIRING_SOON"
	StatusExpired      Status = "EXPIRED"
)

// Defaults; the effective values come from configuration.
const (
	DefaultValidityDays = 90
	DefaultWarningDays  = 30
)

// Derived is the presentation-ready currency state of one qualification.
type Derived struct {
	ReferenceDate time.Time `json:"reference_date"`
	DaysRemaining int       `json:"days_remaining"`
	Status        Status    `json:"status"`
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysRemaining computes validityDays minus whole calendar days elapsed since
// ref. A drive 91 days ago under a 90-day window yields -1.
func DaysRemaining(ref, now time.Time, validityDays int) int {
	elapsed := int(dateOnly(now).Sub(dateOnly(ref)).Hours() / 24)
	return validityDays - elapsed
}

// Classify maps days remaining to a status. Boundaries are fixed and
// non-overlapping: negative is EXPIRED, below warningDays is EXPIRING_SOON,
// anything else is CURRENT.
func Classify(daysRemaining, warningDays int) Status {
	switch {
	case daysRemaining < 0:
		return StatusExpired
	case daysRemaining < warningDays:
		return StatusExpiringSoon
	default:
		return StatusCurrent
	}
}

// Derive computes the currency state of a qualification. The reference date is
// the last drive date when one exists, otherwise the qualification date.
func Derive(qualifiedOn time.Time, lastDrive *time.Time, now time.Time, validityDays, warningDays int) Derived {
	ref := qualifiedOn
	if lastDrive != nil {
		ref = *lastDrive
	}

	remaining := DaysRemaining(ref, now, validityDays)
	return Derived{
		ReferenceDate: dateOnly(ref),
		DaysRemaining: remaining,
		Status:        Classify(remaining, warningDays),
	}
}
