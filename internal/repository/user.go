package repository

import (
	"time"

	"gorm.io/gorm"

	"FormUp/internal/model"
)

// UserFilter narrows roster listings.
type UserFilter struct {
	Role   string
	MSPID  int64
	Search string
	Offset int
	Limit  int
}

func CreateUser(db *gorm.DB, user *model.User) error {
	return db.Create(user).Error
}

func GetUserByID(db *gorm.DB, id int64) (*model.User, error) {
	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByPublicID(db *gorm.DB, publicID int64) (*model.User, error) {
	var user model.User
	if err := db.Where("public_id = ?", publicID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByServiceNumber(db *gorm.DB, serviceNumber string) (*model.User, error) {
	var user model.User
	if err := db.Where("service_number = ?", serviceNumber).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func ListUsers(db *gorm.DB, filter UserFilter) ([]model.User, int64, error) {
	q := db.Model(&model.User{})

	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.MSPID > 0 {
		q = q.Where("msp_id = ?", filter.MSPID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("service_number ILIKE ? OR full_name ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := q.Order("service_number ASC").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func ListUsersByIDs(db *gorm.DB, ids []int64) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func UpdateUser(db *gorm.DB, id int64, updates map[string]interface{}) error {
	return db.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
}

func DeleteUser(db *gorm.DB, id int64) error {
	return db.Delete(&model.User{}, id).Error
}

func TouchLastLogin(db *gorm.DB, id int64, at time.Time) error {
	return db.Model(&model.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}
