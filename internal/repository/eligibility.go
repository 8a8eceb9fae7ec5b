package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"FormUp/internal/model"
)

// GetEligibility returns nil (not an error) when no override exists.
func GetEligibility(db *gorm.DB, userID int64) (*model.Eligibility, error) {
	var e model.Eligibility
	err := db.Where("user_id = ?", userID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// UpsertEligibility keeps one override row per user.
func UpsertEligibility(db *gorm.DB, e *model.Eligibility) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_eligible", "reason", "ineligibility_type", "until_date", "updated_at",
		}),
	}).Create(e).Error
}
