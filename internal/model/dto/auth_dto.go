package dto

// LoginRequest authenticates by service number and password.
type LoginRequest struct {
	ServiceNumber string `json:"service_number" binding:"required"`
	Password      string `json:"password" binding:"required"`
}

// LoginResponse carries the token pair and a snapshot of the signed-in user.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserSnapshot `json:"user"`
}

// UserSnapshot is the identity block returned on login and /me.
type UserSnapshot struct {
	ID            string  `json:"id"`
	ServiceNumber string  `json:"service_number"`
	FullName      string  `json:"full_name"`
	Rank          string  `json:"rank"`
	Role          string  `json:"role"`
	MSPID         *int64  `json:"msp_id,omitempty"`
	MSPName       string  `json:"msp_name,omitempty"`
	Phone         string  `json:"phone,omitempty"` // masked
	CreditBalance int     `json:"credit_balance"`
	DateOfBirth   string  `json:"date_of_birth"`
	LastLoginAt   *string `json:"last_login_at,omitempty"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse mirrors LoginResponse without the user snapshot.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ChangePasswordRequest rotates the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}
