package schedule

// Booking reminder scheduler: every few minutes, find bookings starting
// within the reminder lead window and publish a delayed message for each.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"FormUp/config"
	"FormUp/internal/cache"
	"FormUp/internal/model"
	"FormUp/internal/queue"
	"FormUp/internal/repository"
	"FormUp/pkg/logger"
	"FormUp/storage/database"
)

const bookingScanInterval = 5 * time.Minute

var (
	bookingSchedulerOnce sync.Once
	bookingSchedulerInst *BookingScheduler
)

type BookingScheduler struct {
	logger *zap.Logger
	jobMu  sync.Mutex
}

func GetBookingScheduler() *BookingScheduler {
	bookingSchedulerOnce.Do(func() {
		bookingSchedulerInst = &BookingScheduler{
			logger: logger.Logger,
		}
	})
	return bookingSchedulerInst
}

// ScheduleReminders publishes one delayed message per booking starting within
// the lead window. The Redis mark keeps rescans from double-publishing; the
// worker's idempotency check backstops that.
func (s *BookingScheduler) ScheduleReminders(ctx context.Context) error {
	if !s.jobMu.TryLock() {
		s.logger.Info("Booking reminder scan already running, skipping")
		return nil
	}
	defer s.jobMu.Unlock()

	now := time.Now()
	lead := time.Duration(config.Cfg.BookingReminderLeadMins) * time.Minute
	windowEnd := now.Add(lead + bookingScanInterval)

	db := database.DB().WithContext(ctx)

	bookings, err := repository.ListBookingsStartingBetween(db, now, windowEnd)
	if err != nil {
		return fmt.Errorf("failed to list upcoming bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil
	}

	var published int
	for i := range bookings {
		booking := &bookings[i]

		scheduled, err := cache.IsBookingReminderScheduled(ctx, booking.PublicID)
		if err != nil {
			s.logger.Warn("Failed to check booking reminder status",
				zap.Int64("booking_id", booking.PublicID),
				zap.Error(err),
			)
		} else if scheduled {
			continue
		}

		user, err := repository.GetUserByID(db, booking.UserID)
		if err != nil {
			continue
		}

		// Fire at start minus lead; bookings already inside the lead window
		// get the reminder immediately.
		delay := booking.StartTime.Add(-lead).Sub(now)
		if delay < 0 {
			delay = 0
		}

		msg := model.BookingReminderMessage{
			BookingPublicID: booking.PublicID,
			UserID:          user.PublicID,
			StartTime:       booking.StartTime.Format(time.RFC3339),
			DelaySeconds:    int(delay.Seconds()),
		}
		if err := queue.PublishBookingReminder(ctx, msg); err != nil {
			s.logger.Error("Failed to publish booking reminder",
				zap.Int64("booking_id", booking.PublicID),
				zap.Error(err),
			)
			continue
		}
		published++

		if err := cache.MarkBookingReminderScheduled(ctx, booking.PublicID); err != nil {
			s.logger.Warn("Failed to mark booking reminder scheduled",
				zap.Int64("booking_id", booking.PublicID),
				zap.Error(err),
			)
		}
	}

	if published > 0 {
		s.logger.Info("Scheduled booking reminders",
			zap.Int("published", published),
			zap.Int("candidates", len(bookings)),
		)
	}
	return nil
}

// RunLoop blocks, rescanning the lead window on a fixed interval.
func (s *BookingScheduler) RunLoop(ctx context.Context) {
	ticker := time.NewTicker(bookingScanInterval)
	defer ticker.Stop()

	// One immediate pass so a restart does not miss bookings inside the window.
	if err := s.ScheduleReminders(ctx); err != nil {
		s.logger.Error("Booking reminder scan failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ScheduleReminders(ctx); err != nil {
				s.logger.Error("Booking reminder scan failed", zap.Error(err))
			}
		}
	}
}
