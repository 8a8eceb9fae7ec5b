package model

// TransactionType is the direction of a credit movement.
type TransactionType string

const (
	TransactionTypeGrant  TransactionType = "grant"
	TransactionTypeDeduct TransactionType = "deduct"
)

// Credit transaction reasons.
const (
	CreditReasonInitialGrant  = "initial_grant"
	CreditReasonAdminGrant    = "admin_grant"
	CreditReasonBookingCharge = "booking_charge"
	CreditReasonBookingRefund = "booking_refund"
)

// CreditTransaction is the append-only ledger behind each user's credit
// balance. BalanceAfter carries the running balance; the latest row is the
// source of truth inside booking transactions.
type CreditTransaction struct {
	BaseModel
	UserID          int64           `gorm:"not null;index:idx_credit_transactions_user" json:"user_id"`
	TransactionType TransactionType `gorm:"type:varchar(16);not null" json:"transaction_type"`
	Reason          string          `gorm:"type:varchar(32);not null" json:"reason"`
	Amount          int             `gorm:"not null" json:"amount"`
	BalanceAfter    int             `gorm:"not null" json:"balance_after"`
	BookingID       *int64          `gorm:"index" json:"booking_id,omitempty"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
