package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"FormUp/internal/model"
)

func CreateDriveLog(db *gorm.DB, log *model.DriveLog) error {
	return db.Create(log).Error
}

func GetDriveLogByID(db *gorm.DB, id int64) (*model.DriveLog, error) {
	var log model.DriveLog
	if err := db.First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func ListDriveLogsByUser(db *gorm.DB, userID int64, vehicleType string, limit int) ([]model.DriveLog, error) {
	q := db.Where("user_id = ?", userID)
	if vehicleType != "" {
		q = q.Where("vehicle_type = ?", vehicleType)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []model.DriveLog
	err := q.Order("date DESC, id DESC").Find(&logs).Error
	return logs, err
}

func DeleteDriveLog(db *gorm.DB, id int64) error {
	return db.Delete(&model.DriveLog{}, id).Error
}

// LatestDriveDate returns the most recent remaining drive date for the pair,
// nil when no drives remain. Used to recompute lastDriveDate after a delete.
func LatestDriveDate(db *gorm.DB, userID int64, vehicleType string) (*time.Time, error) {
	var log model.DriveLog
	err := db.
		Where("user_id = ? AND vehicle_type = ?", userID, vehicleType).
		Order("date DESC").
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log.Date, nil
}
