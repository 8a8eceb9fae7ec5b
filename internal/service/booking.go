package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"FormUp/config"
	"FormUp/internal/cache"
	"FormUp/internal/capacity"
	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/internal/repository"
	"FormUp/pkg/errors"
	"FormUp/pkg/logger"
	"FormUp/pkg/metrics"
	"FormUp/pkg/snowflake"
	"FormUp/storage/database"

	"go.uber.org/zap"
)

type BookingService struct{}

var (
	bookingService *BookingService
	bookingOnce    sync.Once
)

func Booking() *BookingService {
	bookingOnce.Do(func() {
		bookingService = &BookingService{}
	})
	return bookingService
}

const (
	maxBookingHours   = 4
	capacityLockKey   = "booking:capacity"
	capacityLockTTL   = 5 * time.Second
	maxCapacityWindow = 31 * 24 * time.Hour
)

// Create reserves a slot. The capacity check runs under a Redis lock so two
// requests cannot both squeeze into the last place of an hour; the credit
// debit and the booking row commit together.
func (s *BookingService) Create(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingItem, error) {
	start := req.StartTime.UTC()
	end := req.EndTime.UTC()

	if err := validateWindow(start, end, time.Now()); err != nil {
		return nil, err
	}
	hours := int(end.Sub(start) / time.Hour)
	credits := hours * config.Cfg.BookingCreditsPerHour

	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	overlaps, err := repository.CountUserOverlaps(db, user.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlaps: %w", err)
	}
	if overlaps > 0 {
		return nil, errors.BookingOverlap
	}

	locked, err := cache.TryLock(ctx, capacityLockKey, capacityLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire capacity lock: %w", err)
	}
	if !locked {
		return nil, errors.BookingLockContention
	}
	defer func() {
		if err := cache.Unlock(context.WithoutCancel(ctx), capacityLockKey); err != nil {
			logger.Logger.Warn("Failed to release capacity lock", zap.Error(err))
		}
	}()

	existing, err := repository.ListActiveBookingsInWindow(db, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings in window: %w", err)
	}
	intervals := toIntervals(existing)
	for _, bucket := range capacity.CountBuckets(start, end, intervals,
		config.Cfg.BookingLimitedAt, config.Cfg.BookingMaxPerHour) {
		if bucket.Count >= config.Cfg.BookingMaxPerHour {
			return nil, errors.BookingCapacityFull
		}
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking ID: %w", err)
	}

	booking := &model.Booking{
		PublicID:       publicID,
		UserID:         user.ID,
		StartTime:      start,
		EndTime:        end,
		CreditsCharged: credits,
		Status:         model.BookingStatusActive,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := repository.CreateBooking(tx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		_, err := applyCreditChange(tx, user.ID, model.TransactionTypeDeduct,
			model.CreditReasonBookingCharge, credits, &booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingCreated(ctx)

	item := s.toItem(booking, user)
	return &item, nil
}

// Cancel releases a slot. Credits come back only when the cancellation lands
// before the refund cutoff ahead of the start time.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (*dto.CancelBookingResponse, error) {
	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	publicID, err := parsePublicID(bookingID)
	if err != nil {
		return nil, errors.BookingNotFound
	}
	booking, err := repository.GetBookingByPublicID(db, publicID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.BookingNotFound
		}
		return nil, fmt.Errorf("failed to query booking: %w", err)
	}
	if booking.UserID != user.ID && user.Role != model.RoleAdmin {
		return nil, errors.BookingNotFound
	}
	if booking.Status != model.BookingStatusActive {
		return nil, errors.BookingNotActive
	}

	now := time.Now()
	if now.After(booking.EndTime) {
		return nil, errors.BookingAlreadyEnded
	}

	cutoff := booking.StartTime.Add(-time.Duration(config.Cfg.BookingRefundCutoffHrs) * time.Hour)
	refunded := now.Before(cutoff)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := repository.CancelBooking(tx, booking.ID, now); err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		if refunded && booking.CreditsCharged > 0 {
			_, err := applyCreditChange(tx, booking.UserID, model.TransactionTypeGrant,
				model.CreditReasonBookingRefund, booking.CreditsCharged, &booking.ID)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingCancelled(ctx, refunded)

	booking.Status = model.BookingStatusCancelled
	booking.CancelledAt = &now

	resp := &dto.CancelBookingResponse{
		Booking:  s.toItem(booking, user),
		Refunded: refunded,
	}
	if refunded {
		resp.Refund = booking.CreditsCharged
	}
	return resp, nil
}

// List returns the caller's bookings. Commanders and admins see everyone's.
func (s *BookingService) List(ctx context.Context, userID, role string) ([]dto.BookingItem, error) {
	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	if role != string(model.RoleCommander) && role != string(model.RoleAdmin) {
		bookings, err := repository.ListBookingsByUser(db, user.ID, 100)
		if err != nil {
			return nil, fmt.Errorf("failed to list bookings: %w", err)
		}

		items := make([]dto.BookingItem, 0, len(bookings))
		for i := range bookings {
			items = append(items, s.toItem(&bookings[i], user))
		}
		return items, nil
	}

	bookings, err := repository.ListRecentBookings(db, 200)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	ownerIDs := make([]int64, 0, len(bookings))
	seen := make(map[int64]bool, len(bookings))
	for i := range bookings {
		if !seen[bookings[i].UserID] {
			seen[bookings[i].UserID] = true
			ownerIDs = append(ownerIDs, bookings[i].UserID)
		}
	}

	owners, err := repository.ListUsersByIDs(db, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking owners: %w", err)
	}
	byID := make(map[int64]*model.User, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}

	items := make([]dto.BookingItem, 0, len(bookings))
	for i := range bookings {
		owner := byID[bookings[i].UserID]
		if owner == nil {
			continue
		}
		items = append(items, s.toItem(&bookings[i], owner))
	}
	return items, nil
}

// Capacity returns the per-hour occupancy bands for a window.
func (s *BookingService) Capacity(ctx context.Context, q *dto.CapacityQuery) ([]dto.CapacityBucket, error) {
	from, to, err := parseCapacityWindow(q)
	if err != nil {
		return nil, err
	}

	db := database.DB().WithContext(ctx)

	bookings, err := repository.ListActiveBookingsInWindow(db, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings in window: %w", err)
	}

	buckets := capacity.CountBuckets(from, to, toIntervals(bookings),
		config.Cfg.BookingLimitedAt, config.Cfg.BookingMaxPerHour)

	out := make([]dto.CapacityBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.CapacityBucket{Start: b.Start, Count: b.Count, Band: string(b.Band)})
	}
	return out, nil
}

// CalendarEvents feeds the shared calendar. Only the caller's own bookings
// expose a name; everyone else's show as reserved.
func (s *BookingService) CalendarEvents(ctx context.Context, userID string, q *dto.CapacityQuery) ([]dto.CalendarEvent, error) {
	from, to, err := parseCapacityWindow(q)
	if err != nil {
		return nil, err
	}

	db := database.DB().WithContext(ctx)

	caller, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	bookings, err := repository.ListActiveBookingsInWindow(db, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings in window: %w", err)
	}

	events := make([]dto.CalendarEvent, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		ev := dto.CalendarEvent{
			ID:        formatPublicID(b.PublicID),
			Title:     "Reserved",
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Own:       b.UserID == caller.ID,
		}
		if ev.Own {
			ev.Title = caller.FullName
		}
		events = append(events, ev)
	}
	return events, nil
}

// validateWindow enforces hour-aligned future windows of bounded length.
func validateWindow(start, end, now time.Time) error {
	if !start.Equal(start.Truncate(time.Hour)) || !end.Equal(end.Truncate(time.Hour)) {
		return errors.BookingInvalidWindow
	}
	if !end.After(start) {
		return errors.BookingInvalidWindow
	}
	if end.Sub(start) > maxBookingHours*time.Hour {
		return errors.BookingInvalidWindow
	}
	if !start.After(now) {
		return errors.BookingInvalidWindow
	}
	return nil
}

func parseCapacityWindow(q *dto.CapacityQuery) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.Truncate(time.Hour)
	to := from.Add(7 * 24 * time.Hour)

	var err error
	if q.From != "" {
		if from, err = time.Parse(time.RFC3339, q.From); err != nil {
			return time.Time{}, time.Time{}, errors.InvalidRequest
		}
	}
	if q.To != "" {
		if to, err = time.Parse(time.RFC3339, q.To); err != nil {
			return time.Time{}, time.Time{}, errors.InvalidRequest
		}
	}
	if !to.After(from) || to.Sub(from) > maxCapacityWindow {
		return time.Time{}, time.Time{}, errors.InvalidRequest
	}
	return from.UTC(), to.UTC(), nil
}

func toIntervals(bookings []model.Booking) []capacity.Interval {
	intervals := make([]capacity.Interval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, capacity.Interval{Start: b.StartTime, End: b.EndTime})
	}
	return intervals
}

func (s *BookingService) toItem(b *model.Booking, u *model.User) dto.BookingItem {
	return dto.BookingItem{
		ID:             formatPublicID(b.PublicID),
		UserID:         formatPublicID(u.PublicID),
		ServiceNumber:  u.ServiceNumber,
		FullName:       u.FullName,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		CreditsCharged: b.CreditsCharged,
		Status:         string(b.Status),
		CancelledAt:    b.CancelledAt,
	}
}
