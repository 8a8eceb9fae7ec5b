package repository

import (
	"gorm.io/gorm"

	"FormUp/internal/model"
)

func CreateMSP(db *gorm.DB, msp *model.MSP) error {
	return db.Create(msp).Error
}

func GetMSPByID(db *gorm.DB, id int64) (*model.MSP, error) {
	var msp model.MSP
	if err := db.First(&msp, id).Error; err != nil {
		return nil, err
	}
	return &msp, nil
}

func GetMSPByCode(db *gorm.DB, code string) (*model.MSP, error) {
	var msp model.MSP
	if err := db.Where("code = ?", code).First(&msp).Error; err != nil {
		return nil, err
	}
	return &msp, nil
}

func ListMSPs(db *gorm.DB) ([]model.MSP, error) {
	var msps []model.MSP
	err := db.Order("code ASC").Find(&msps).Error
	return msps, err
}
