package repository

import (
	"time"

	"gorm.io/gorm"

	"FormUp/internal/model"
)

func CreateQualification(db *gorm.DB, q *model.Qualification) error {
	return db.Create(q).Error
}

func GetQualificationByID(db *gorm.DB, id int64) (*model.Qualification, error) {
	var q model.Qualification
	if err := db.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func GetQualification(db *gorm.DB, userID int64, vehicleType string) (*model.Qualification, error) {
	var q model.Qualification
	err := db.Where("user_id = ? AND vehicle_type = ?", userID, vehicleType).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func ListQualificationsByUser(db *gorm.DB, userID int64) ([]model.Qualification, error) {
	var qs []model.Qualification
	err := db.Where("user_id = ?", userID).Order("vehicle_type ASC").Find(&qs).Error
	return qs, err
}

// ListQualificationsByMSP joins through users for commander scoping.
func ListQualificationsByMSP(db *gorm.DB, mspID int64) ([]model.Qualification, error) {
	var qs []model.Qualification
	err := db.
		Joins("JOIN users ON users.id = qualifications.user_id AND users.deleted_at IS NULL").
		Where("users.msp_id = ?", mspID).
		Order("qualifications.user_id ASC, qualifications.vehicle_type ASC").
		Find(&qs).Error
	return qs, err
}

// ListAllQualifications pages through every row for the nightly derive job.
func ListAllQualifications(db *gorm.DB, offset, limit int) ([]model.Qualification, error) {
	var qs []model.Qualification
	err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, err
}

func DeleteQualification(db *gorm.DB, id int64) error {
	return db.Delete(&model.Qualification{}, id).Error
}

func SetLastDriveDate(db *gorm.DB, id int64, date *time.Time) error {
	return db.Model(&model.Qualification{}).Where("id = ?", id).Update("last_drive_date", date).Error
}
