package model

import (
	"time"

	"gorm.io/datatypes"
)

// IpptStation enumerates the three test stations.
type IpptStation string

const (
	StationSitUp  IpptStation = "sit_up"
	StationPushUp IpptStation = "push_up"
	StationRun    IpptStation = "run"
)

// IpptResult is the award tier derived from the total score.
type IpptResult string

const (
	ResultGold   IpptResult = "gold"
	ResultSilver IpptResult = "silver"
	ResultPass   IpptResult = "pass"
	ResultFail   IpptResult = "fail"
)

// IpptScoreBand is one row of the age-bracketed scoring table.
// Threshold is reps for sit-up/push-up bands and seconds for run bands.
type IpptScoreBand struct {
	BaseModel
	AgeGroup  string      `gorm:"type:varchar(8);not null;index:idx_score_bands_group_station" json:"age_group"`
	Station   IpptStation `gorm:"type:varchar(16);not null;index:idx_score_bands_group_station" json:"station"`
	Threshold int         `gorm:"not null" json:"threshold"`
	Points    int         `gorm:"not null" json:"points"`
}

func (IpptScoreBand) TableName() string {
	return "ippt_score_bands"
}

// IpptAttempt is append-only: corrections from the scanning flow create a new
// attempt rather than editing one in place.
type IpptAttempt struct {
	BaseModel
	UserID         int64      `gorm:"not null;index:idx_ippt_attempts_user_date" json:"user_id"`
	Date           time.Time  `gorm:"type:date;not null;index:idx_ippt_attempts_user_date" json:"date"`
	SessionID      *int64     `gorm:"index" json:"session_id,omitempty"`
	AgeGroup       string     `gorm:"type:varchar(8);not null" json:"age_group"`
	SitupReps      int        `gorm:"not null" json:"situp_reps"`
	PushupReps     int        `gorm:"not null" json:"pushup_reps"`
	RunTimeSeconds int        `gorm:"not null" json:"run_time_seconds"`
	SitupScore     int        `gorm:"not null" json:"situp_score"`
	PushupScore    int        `gorm:"not null" json:"pushup_score"`
	RunScore       int        `gorm:"not null" json:"run_score"`
	TotalScore     int        `gorm:"not null" json:"total_score"`
	Result         IpptResult `gorm:"type:varchar(8);not null;index" json:"result"`
}

func (IpptAttempt) TableName() string {
	return "ippt_attempts"
}

// IpptSessionStatus tracks the scanning flow: a session stays draft until a
// commander confirms its rows into attempts.
type IpptSessionStatus string

const (
	SessionStatusDraft     IpptSessionStatus = "draft"
	SessionStatusConfirmed IpptSessionStatus = "confirmed"
)

// IpptSession is one scanned scoresheet upload. RawSheet keeps the OCR cell
// payload (JSONB) for audit and re-parsing.
type IpptSession struct {
	BaseModel
	PublicID    int64             `gorm:"uniqueIndex;not null" json:"public_id"`
	CommanderID int64             `gorm:"not null;index" json:"commander_id"`
	MSPID       *int64            `gorm:"index" json:"msp_id,omitempty"`
	Date        time.Time         `gorm:"type:date;not null" json:"date"`
	Status      IpptSessionStatus `gorm:"type:varchar(16);not null;default:'draft';index" json:"status"`
	UploadID    string            `gorm:"type:varchar(36);not null" json:"upload_id"`
	RawSheet    datatypes.JSON    `gorm:"type:jsonb" json:"-"`
	Rows        []IpptSessionRow  `gorm:"foreignKey:SessionID" json:"rows,omitempty"`
}

func (IpptSession) TableName() string {
	return "ippt_sessions"
}

// IpptSessionRow is one soldier line extracted from a scanned sheet, kept as a
// draft until confirmation resolves it to a user and appends an attempt.
type IpptSessionRow struct {
	BaseModel
	SessionID      int64  `gorm:"not null;index" json:"session_id"`
	Serial         int    `gorm:"not null" json:"serial"`
	ServiceNumber  string `gorm:"type:varchar(16);not null;default:''" json:"service_number"`
	Name           string `gorm:"type:varchar(128);not null;default:''" json:"name"`
	SitupReps      int    `gorm:"not null;default:0" json:"situp_reps"`
	PushupReps     int    `gorm:"not null;default:0" json:"pushup_reps"`
	RunTimeSeconds int    `gorm:"not null;default:0" json:"run_time_seconds"`
	ResolvedUserID *int64 `gorm:"index" json:"resolved_user_id,omitempty"`
	AttemptID      *int64 `json:"attempt_id,omitempty"`
}

func (IpptSessionRow) TableName() string {
	return "ippt_session_rows"
}
