package repository

import (
	"time"

	"gorm.io/gorm"

	"FormUp/internal/model"
)

func CreateBooking(db *gorm.DB, booking *model.Booking) error {
	return db.Create(booking).Error
}

func GetBookingByPublicID(db *gorm.DB, publicID int64) (*model.Booking, error) {
	var booking model.Booking
	if err := db.Where("public_id = ?", publicID).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func ListBookingsByUser(db *gorm.DB, userID int64, limit int) ([]model.Booking, error) {
	q := db.Where("user_id = ?", userID).Order("start_time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var bookings []model.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}

func ListRecentBookings(db *gorm.DB, limit int) ([]model.Booking, error) {
	q := db.Order("start_time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var bookings []model.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}

// ListActiveBookingsInWindow returns active bookings that overlap the
// half-open window [from, to).
func ListActiveBookingsInWindow(db *gorm.DB, from, to time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := db.
		Where("status = ?", model.BookingStatusActive).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

// CountUserOverlaps counts the caller's own active bookings overlapping the
// requested slot. Anything above zero blocks the create.
func CountUserOverlaps(db *gorm.DB, userID int64, start, end time.Time) (int64, error) {
	var count int64
	err := db.Model(&model.Booking{}).
		Where("user_id = ? AND status = ?", userID, model.BookingStatusActive).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error
	return count, err
}

func CancelBooking(db *gorm.DB, id int64, at time.Time) error {
	return db.Model(&model.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       model.BookingStatusCancelled,
		"cancelled_at": at,
	}).Error
}

// ListBookingsStartingBetween feeds the reminder scheduler; only active
// bookings without a sent reminder qualify.
func ListBookingsStartingBetween(db *gorm.DB, from, to time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := db.
		Where("status = ?", model.BookingStatusActive).
		Where("start_time >= ? AND start_time < ?", from, to).
		Where("reminder_sent_at IS NULL").
		Order("start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func MarkBookingReminderSent(db *gorm.DB, id int64, at time.Time) error {
	return db.Model(&model.Booking{}).Where("id = ?", id).Update("reminder_sent_at", at).Error
}
