package model

import "time"

// Role controls which views and operations a user may reach.
type Role string

const (
	RoleSoldier   Role = "soldier"
	RoleCommander Role = "commander"
	RoleAdmin     Role = "admin"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleSoldier, RoleCommander, RoleAdmin:
		return true
	}
	return false
}

// User is a unit member. The service number is the login identity; the public
// ID is what the API exposes.
type User struct {
	BaseModel
	PublicID      int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	ServiceNumber string     `gorm:"uniqueIndex;type:varchar(16);not null" json:"service_number"`
	FullName      string     `gorm:"type:varchar(128);not null" json:"full_name"`
	Rank          string     `gorm:"type:varchar(16);not null;default:''" json:"rank"`
	Role          Role       `gorm:"type:varchar(16);not null;default:'soldier';index:idx_users_role" json:"role"`
	MSPID         *int64     `gorm:"index:idx_users_msp" json:"msp_id,omitempty"`
	DateOfBirth   time.Time  `gorm:"type:date;not null" json:"date_of_birth"`
	PasswordHash  string     `gorm:"type:varchar(128);not null" json:"-"`
	PhoneCipher   []byte     `gorm:"type:bytea" json:"-"`                // phone ciphertext, never exposed
	PhoneHash     *string    `gorm:"uniqueIndex;type:char(64)" json:"-"` // lookup hash
	CreditBalance int        `gorm:"not null;default:0" json:"credit_balance"`
	LastLoginAt   *time.Time `gorm:"type:timestamptz" json:"last_login_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}
