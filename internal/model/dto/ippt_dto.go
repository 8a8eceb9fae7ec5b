package dto

// ScoreBandItem is one row of the scoring table for an age group.
type ScoreBandItem struct {
	Station   string `json:"station"`
	Threshold int    `json:"threshold"`
	Points    int    `json:"points"`
}

// ScoreTableResponse is the full table for one age group.
type ScoreTableResponse struct {
	AgeGroup string          `json:"age_group"`
	Bands    []ScoreBandItem `json:"bands"`
}

// CreateAttemptRequest records a manual IPPT attempt. Scores are computed
// server-side; run time arrives as MM:SS.
type CreateAttemptRequest struct {
	UserID     string `json:"user_id"` // commander may record for others
	Date       string `json:"date" binding:"required"`
	SitupReps  int    `json:"situp_reps"`
	PushupReps int    `json:"pushup_reps"`
	RunTime    string `json:"run_time" binding:"required"` // MM:SS
}

// AttemptItem is one attempt in the history listing.
type AttemptItem struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	Date        string `json:"date"`
	AgeGroup    string `json:"age_group"`
	SitupReps   int    `json:"situp_reps"`
	PushupReps  int    `json:"pushup_reps"`
	RunTime     string `json:"run_time"` // MM:SS
	SitupScore  int    `json:"situp_score"`
	PushupScore int    `json:"pushup_score"`
	RunScore    int    `json:"run_score"`
	TotalScore  int    `json:"total_score"`
	Result      string `json:"result"`
	SessionID   *int64 `json:"session_id,omitempty"`
}

// OCRCell is one cell of the table extracted from a scanned result sheet.
type OCRCell struct {
	RowIndex    int    `json:"rowIndex"`
	ColumnIndex int    `json:"columnIndex"`
	Content     string `json:"content"`
}

// CreateSessionRequest uploads a scanned result sheet, either as the raw image
// (sent to the OCR provider) or as a pre-extracted cell grid.
type CreateSessionRequest struct {
	Date        string    `json:"date" binding:"required"`
	MSPID       *int64    `json:"msp_id"`
	ImageBase64 string    `json:"image_base64"`
	Cells       []OCRCell `json:"cells"`
}

// SessionRowItem is one parsed draft row awaiting confirmation.
type SessionRowItem struct {
	Serial        int    `json:"serial"`
	ServiceNumber string `json:"service_number"`
	Name          string `json:"name"`
	SitupReps     int    `json:"situp_reps"`
	PushupReps    int    `json:"pushup_reps"`
	RunTime       string `json:"run_time"`
	Resolved      bool   `json:"resolved"`
}

// SessionItem summarizes an upload session.
type SessionItem struct {
	ID        string           `json:"id"`
	Date      string           `json:"date"`
	MSPID     *int64           `json:"msp_id,omitempty"`
	Status    string           `json:"status"`
	RowCount  int              `json:"row_count"`
	CreatedAt string           `json:"created_at"`
	Rows      []SessionRowItem `json:"rows,omitempty"`
}

// ConfirmSessionResponse reports the outcome per row.
type ConfirmSessionResponse struct {
	SessionID  string   `json:"session_id"`
	Confirmed  int      `json:"confirmed"`
	Unresolved []string `json:"unresolved,omitempty"` // service numbers not matched
}

// CommanderStatsQuery scopes the aggregate report.
type CommanderStatsQuery struct {
	MSPID int64  `query:"msp_id"`
	From  string `query:"from"`
	To    string `query:"to"`
}

// CommanderStatsResponse aggregates attempts for a commander's sub-unit.
type CommanderStatsResponse struct {
	MSPID        int64          `json:"msp_id,omitempty"`
	AttemptCount int            `json:"attempt_count"`
	AverageTotal float64        `json:"average_total"`
	PassRate     float64        `json:"pass_rate"`
	TierCounts   map[string]int `json:"tier_counts"`
}
