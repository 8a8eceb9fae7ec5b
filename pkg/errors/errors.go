package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition is a business error code with its default message.
type Definition struct {
	Code    string
	Message string
}

// Auth errors.
var (
	InvalidCredentials = Definition{Code: "INVALID_CREDENTIALS", Message: "Service number or password incorrect"}
	PasswordMismatch   = Definition{Code: "PASSWORD_MISMATCH", Message: "Current password incorrect"}
	PasswordTooWeak    = Definition{Code: "PASSWORD_TOO_WEAK", Message: "Password must be at least 8 characters"}
	Unauthorized       = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	Forbidden          = Definition{Code: "FORBIDDEN", Message: "Insufficient role for this operation"}
	InvalidUserID      = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	UserNotFound       = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
)

// Admin / user management errors.
var (
	ServiceNumberTaken = Definition{Code: "SERVICE_NUMBER_TAKEN", Message: "Service number already registered"}
	MSPNotFound        = Definition{Code: "MSP_NOT_FOUND", Message: "MSP not found"}
)

// Qualification / drive log errors.
var (
	QualificationNotFound = Definition{Code: "QUALIFICATION_NOT_FOUND", Message: "Qualification not found"}
	QualificationExists   = Definition{Code: "QUALIFICATION_EXISTS", Message: "Qualification already exists for this vehicle type"}
	DriveLogNotFound      = Definition{Code: "DRIVE_LOG_NOT_FOUND", Message: "Drive log not found"}
	NotQualified          = Definition{Code: "NOT_QUALIFIED", Message: "No qualification for this vehicle type"}
	UserIneligible        = Definition{Code: "USER_INELIGIBLE", Message: "User is excluded from currency tracking"}
	InvalidScanPayload    = Definition{Code: "INVALID_SCAN_PAYLOAD", Message: "Scanned QR payload invalid"}
)

// IPPT errors.
var (
	ScoreTableNotFound   = Definition{Code: "SCORE_TABLE_NOT_FOUND", Message: "No scoring table for this age group"}
	InvalidStation       = Definition{Code: "INVALID_STATION", Message: "Invalid IPPT station"}
	InvalidRunTime       = Definition{Code: "INVALID_RUN_TIME", Message: "Run time must be MM:SS"}
	SessionNotFound      = Definition{Code: "SESSION_NOT_FOUND", Message: "IPPT session not found"}
	SessionNotDraft      = Definition{Code: "SESSION_NOT_DRAFT", Message: "IPPT session already confirmed"}
	SessionEmpty         = Definition{Code: "SESSION_EMPTY", Message: "IPPT session has no resolvable rows"}
	ScanExtractionFailed = Definition{Code: "SCAN_EXTRACTION_FAILED", Message: "Could not extract rows from scanned sheet"}
)

// Eligibility errors.
var (
	EligibilityInvalid = Definition{Code: "ELIGIBILITY_INVALID", Message: "Eligibility override invalid"}
)

// Booking errors.
var (
	BookingNotFound       = Definition{Code: "BOOKING_NOT_FOUND", Message: "Booking not found"}
	BookingInvalidWindow  = Definition{Code: "BOOKING_INVALID_WINDOW", Message: "Booking window invalid"}
	BookingOverlap        = Definition{Code: "BOOKING_OVERLAP", Message: "You already have a booking in this window"}
	BookingCapacityFull   = Definition{Code: "BOOKING_CAPACITY_FULL", Message: "Facility is fully booked for part of this window"}
	BookingAlreadyEnded   = Definition{Code: "BOOKING_ALREADY_ENDED", Message: "Booking already ended"}
	BookingNotActive      = Definition{Code: "BOOKING_NOT_ACTIVE", Message: "Booking is not active"}
	CreditsInsufficient   = Definition{Code: "CREDITS_INSUFFICIENT", Message: "Credit balance insufficient"}
	BookingLockContention = Definition{Code: "BOOKING_LOCK_CONTENTION", Message: "Booking in progress, try again"}
)

// Generic request errors.
var (
	InvalidRequest = Definition{Code: "INVALID_REQUEST", Message: "Request payload invalid"}
	RateLimited    = Definition{Code: "RATE_LIMITED", Message: "Too many requests"}
)

// Lookup provides error code resolution.
var Lookup = map[string]Definition{
	InvalidCredentials.Code:    InvalidCredentials,
	PasswordMismatch.Code:      PasswordMismatch,
	PasswordTooWeak.Code:       PasswordTooWeak,
	Unauthorized.Code:          Unauthorized,
	Forbidden.Code:             Forbidden,
	InvalidUserID.Code:         InvalidUserID,
	UserNotFound.Code:          UserNotFound,
	ServiceNumberTaken.Code:    ServiceNumberTaken,
	MSPNotFound.Code:           MSPNotFound,
	QualificationNotFound.Code: QualificationNotFound,
	QualificationExists.Code:   QualificationExists,
	DriveLogNotFound.Code:      DriveLogNotFound,
	NotQualified.Code:          NotQualified,
	UserIneligible.Code:        UserIneligible,
	InvalidScanPayload.Code:    InvalidScanPayload,
	ScoreTableNotFound.Code:    ScoreTableNotFound,
	InvalidStation.Code:        InvalidStation,
	InvalidRunTime.Code:        InvalidRunTime,
	SessionNotFound.Code:       SessionNotFound,
	SessionNotDraft.Code:       SessionNotDraft,
	SessionEmpty.Code:          SessionEmpty,
	ScanExtractionFailed.Code:  ScanExtractionFailed,
	EligibilityInvalid.Code:    EligibilityInvalid,
	BookingNotFound.Code:       BookingNotFound,
	BookingInvalidWindow.Code:  BookingInvalidWindow,
	BookingOverlap.Code:        BookingOverlap,
	BookingCapacityFull.Code:   BookingCapacityFull,
	BookingAlreadyEnded.Code:   BookingAlreadyEnded,
	BookingNotActive.Code:      BookingNotActive,
	CreditsInsufficient.Code:   CreditsInsufficient,
	BookingLockContention.Code: BookingLockContention,
	InvalidRequest.Code:        InvalidRequest,
	RateLimited.Code:           RateLimited,
}

// Get returns the Definition for a code, or a generic one when unknown.
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
