package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"FormUp/internal/model"
)

var forUpdate = clause.Locking{Strength: "UPDATE"}

func CreateCreditTransaction(db *gorm.DB, tx *model.CreditTransaction) error {
	return db.Create(tx).Error
}

func ListCreditTransactions(db *gorm.DB, userID int64, limit int) ([]model.CreditTransaction, error) {
	q := db.Where("user_id = ?", userID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var txs []model.CreditTransaction
	err := q.Find(&txs).Error
	return txs, err
}

// LockUserForUpdate reads the user row with FOR UPDATE so balance math inside
// a transaction cannot race.
func LockUserForUpdate(db *gorm.DB, userID int64) (*model.User, error) {
	var user model.User
	err := db.
		Clauses(forUpdate).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdateUserBalance(db *gorm.DB, userID int64, balance int) error {
	return db.Model(&model.User{}).Where("id = ?", userID).Update("credit_balance", balance).Error
}
