package repository

import (
	"time"

	"gorm.io/gorm"

	"FormUp/internal/model"
)

func ListScoreBands(db *gorm.DB, ageGroup string) ([]model.IpptScoreBand, error) {
	var bands []model.IpptScoreBand
	err := db.
		Where("age_group = ?", ageGroup).
		Order("station ASC, points ASC").
		Find(&bands).Error
	return bands, err
}

func CreateAttempt(db *gorm.DB, attempt *model.IpptAttempt) error {
	return db.Create(attempt).Error
}

func ListAttemptsByUser(db *gorm.DB, userID int64, limit int) ([]model.IpptAttempt, error) {
	q := db.Where("user_id = ?", userID).Order("date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var attempts []model.IpptAttempt
	err := q.Find(&attempts).Error
	return attempts, err
}

func CreateSession(db *gorm.DB, session *model.IpptSession) error {
	return db.Create(session).Error
}

func GetSessionByPublicID(db *gorm.DB, publicID int64) (*model.IpptSession, error) {
	var session model.IpptSession
	err := db.Preload("Rows").Where("public_id = ?", publicID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func ListSessionsByCommander(db *gorm.DB, commanderID int64, limit int) ([]model.IpptSession, error) {
	q := db.Where("commander_id = ?", commanderID).Order("date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var sessions []model.IpptSession
	err := q.Preload("Rows").Find(&sessions).Error
	return sessions, err
}

func UpdateSessionStatus(db *gorm.DB, id int64, status model.IpptSessionStatus) error {
	return db.Model(&model.IpptSession{}).Where("id = ?", id).Update("status", status).Error
}

func UpdateSessionRow(db *gorm.DB, rowID int64, updates map[string]interface{}) error {
	return db.Model(&model.IpptSessionRow{}).Where("id = ?", rowID).Updates(updates).Error
}

// AttemptAggregates feeds commander stats.
type AttemptAggregates struct {
	AttemptCount int64
	AverageTotal float64
	TierCounts   map[string]int
}

// AggregateAttempts summarizes attempts for users of one MSP in a date range.
func AggregateAttempts(db *gorm.DB, mspID int64, from, to time.Time) (*AttemptAggregates, error) {
	base := db.Model(&model.IpptAttempt{}).
		Joins("JOIN users ON users.id = ippt_attempts.user_id AND users.deleted_at IS NULL")

	if mspID > 0 {
		base = base.Where("users.msp_id = ?", mspID)
	}
	if !from.IsZero() {
		base = base.Where("ippt_attempts.date >= ?", from)
	}
	if !to.IsZero() {
		base = base.Where("ippt_attempts.date <= ?", to)
	}

	type tierRow struct {
		Result string
		Count  int64
		Avg    float64
	}

	var rows []tierRow
	err := base.
		Select("ippt_attempts.result AS result, COUNT(*) AS count, AVG(ippt_attempts.total_score) AS avg").
		Group("ippt_attempts.result").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	agg := &AttemptAggregates{TierCounts: make(map[string]int)}
	var weighted float64
	for _, r := range rows {
		agg.AttemptCount += r.Count
		agg.TierCounts[r.Result] = int(r.Count)
		weighted += r.Avg * float64(r.Count)
	}
	if agg.AttemptCount > 0 {
		agg.AverageTotal = weighted / float64(agg.AttemptCount)
	}

	return agg, nil
}
