package model

import "time"

// BookingStatus is active or cancelled; completed bookings stay active.
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking reserves the shared mess facility. Credits are debited on create and
// refunded on cancel only when the cancellation is before the refund cutoff.
type Booking struct {
	BaseModel
	PublicID       int64         `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID         int64         `gorm:"not null;index:idx_bookings_user_status" json:"user_id"`
	StartTime      time.Time     `gorm:"type:timestamptz;not null;index" json:"start_time"`
	EndTime        time.Time     `gorm:"type:timestamptz;not null;index" json:"end_time"`
	CreditsCharged int           `gorm:"not null" json:"credits_charged"`
	Status         BookingStatus `gorm:"type:varchar(16);not null;default:'active';index:idx_bookings_user_status" json:"status"`
	CancelledAt    *time.Time    `gorm:"type:timestamptz" json:"cancelled_at,omitempty"`
	ReminderSentAt *time.Time    `gorm:"type:timestamptz" json:"reminder_sent_at,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}
