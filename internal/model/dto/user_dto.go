package dto

// CreateUserRequest enrols a soldier or commander. Admin only.
type CreateUserRequest struct {
	ServiceNumber string `json:"service_number" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	Rank          string `json:"rank" binding:"required"`
	Role          string `json:"role" binding:"required"`
	MSPID         *int64 `json:"msp_id"`
	DateOfBirth   string `json:"date_of_birth" binding:"required"` // YYYY-MM-DD
	Phone         string `json:"phone"`
	Password      string `json:"password" binding:"required"`
}

// UpdateUserRequest patches profile fields; nil means unchanged.
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Rank     *string `json:"rank"`
	Role     *string `json:"role"`
	MSPID    *int64  `json:"msp_id"`
	Phone    *string `json:"phone"`
}

// UserListQuery filters the admin roster listing.
type UserListQuery struct {
	Role   string `query:"role"`
	MSPID  int64  `query:"msp_id"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// UserItem is a roster row.
type UserItem struct {
	ID            string `json:"id"`
	ServiceNumber string `json:"service_number"`
	FullName      string `json:"full_name"`
	Rank          string `json:"rank"`
	Role          string `json:"role"`
	MSPID         *int64 `json:"msp_id,omitempty"`
	MSPName       string `json:"msp_name,omitempty"`
	CreditBalance int    `json:"credit_balance"`
}

// GrantCreditsRequest tops up a user's booking credits. Admin only.
type GrantCreditsRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Note   string `json:"note"`
}

// CreditBalanceResponse reports the balance plus recent ledger entries.
type CreditBalanceResponse struct {
	Balance      int                 `json:"balance"`
	Transactions []CreditTransaction `json:"transactions"`
}

// CreditTransaction is one ledger row.
type CreditTransaction struct {
	Type         string `json:"type"`
	Reason       string `json:"reason"`
	Amount       int    `json:"amount"`
	BalanceAfter int    `json:"balance_after"`
	BookingID    string `json:"booking_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}
