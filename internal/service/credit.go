package service

import (
	"fmt"

	"gorm.io/gorm"

	"FormUp/internal/model"
	"FormUp/internal/repository"
	"FormUp/pkg/errors"
)

// applyCreditChange moves credits inside an existing transaction. It locks the
// user row, appends a ledger entry with the balance after, and writes the new
// balance back. Callers must run it inside db.Transaction.
func applyCreditChange(tx *gorm.DB, userID int64, txType model.TransactionType, reason string, amount int, bookingID *int64) (int, error) {
	if amount <= 0 {
		return 0, errors.InvalidRequest
	}

	user, err := repository.LockUserForUpdate(tx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock user for credit change: %w", err)
	}

	newBalance := user.CreditBalance
	switch txType {
	case model.TransactionTypeGrant:
		newBalance += amount
	case model.TransactionTypeDeduct:
		if user.CreditBalance < amount {
			return 0, errors.CreditsInsufficient
		}
		newBalance -= amount
	default:
		return 0, errors.InvalidRequest
	}

	entry := &model.CreditTransaction{
		UserID:          userID,
		TransactionType: txType,
		Reason:          reason,
		Amount:          amount,
		BalanceAfter:    newBalance,
		BookingID:       bookingID,
	}
	if err := repository.CreateCreditTransaction(tx, entry); err != nil {
		return 0, fmt.Errorf("failed to create credit transaction: %w", err)
	}

	if err := repository.UpdateUserBalance(tx, userID, newBalance); err != nil {
		return 0, fmt.Errorf("failed to update credit balance: %w", err)
	}

	return newBalance, nil
}
