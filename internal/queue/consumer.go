package queue

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"FormUp/internal/cache"
	"FormUp/internal/model"
	"FormUp/internal/repository"
	"FormUp/pkg/errors"
	"FormUp/pkg/logger"
	"FormUp/pkg/sms"
	"FormUp/storage/database"
	"FormUp/storage/mq"
	"FormUp/utils"
)

const (
	processingTTL = 24 * time.Hour
	processedTTL  = 48 * time.Hour
)

// StartCurrencyReminderConsumer consumes currency reminder batches and fans
// out one SMS per user, capped by the monthly reminder limit.
func StartCurrencyReminderConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.CurrencyReminderMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal currency reminder message: %w", err)
		}

		acquired, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, processingTTL)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// Redis failure falls open: better a duplicate SMS than none.
		} else if !acquired {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("message %s already processed", msg.MessageID)}
		}

		// A batch that survived a backlog past its scan date is stale; the
		// next nightly scan has already re-evaluated everyone in it.
		if msg.ScanDate != time.Now().Format("2006-01-02") {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("batch %s scanned on %s is stale", msg.BatchID, msg.ScanDate)}
		}

		logger.Logger.Info("Processing currency reminder batch",
			zap.String("message_id", msg.MessageID),
			zap.String("batch_id", msg.BatchID),
			zap.String("vehicle_type", msg.VehicleType),
			zap.Int("user_count", len(msg.UserIDs)),
		)

		db := database.DB().WithContext(ctx)
		var sent, skipped, failed int
		for _, publicID := range msg.UserIDs {
			if err := sendCurrencyReminder(ctx, db, publicID, &msg); err != nil {
				if errors.IsSkipMessage(err) {
					skipped++
					continue
				}
				failed++
				logger.Logger.Error("Failed to send currency reminder",
					zap.Int64("user_id", publicID),
					zap.String("vehicle_type", msg.VehicleType),
					zap.Error(err),
				)
				continue
			}
			sent++
		}

		logger.Logger.Info("Currency reminder batch done",
			zap.String("batch_id", msg.BatchID),
			zap.Int("sent", sent),
			zap.Int("skipped", skipped),
			zap.Int("failed", failed),
		)

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, processedTTL); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}
		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueCurrencyReminders,
		ConsumerTag:   "currency_reminder_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartBookingReminderConsumer consumes per-booking reminders scheduled ahead
// of each start time.
func StartBookingReminderConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.BookingReminderMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal booking reminder message: %w", err)
		}

		acquired, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, processingTTL)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		} else if !acquired {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("message %s already processed", msg.MessageID)}
		}

		db := database.DB().WithContext(ctx)

		booking, err := repository.GetBookingByPublicID(db, msg.BookingPublicID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return &errors.SkipMessageError{Reason: fmt.Sprintf("booking %d no longer exists", msg.BookingPublicID)}
			}
			unmark(ctx, msg.MessageID)
			return fmt.Errorf("failed to load booking: %w", err)
		}

		// Cancelled, already started or already reminded bookings need no SMS.
		if booking.Status != model.BookingStatusActive {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("booking %d is %s", msg.BookingPublicID, booking.Status)}
		}
		if booking.ReminderSentAt != nil {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("booking %d already reminded", msg.BookingPublicID)}
		}
		if time.Now().After(booking.StartTime) {
			return &errors.SkipMessageError{Reason: fmt.Sprintf("booking %d already started", msg.BookingPublicID)}
		}

		user, err := repository.GetUserByID(db, booking.UserID)
		if err != nil {
			unmark(ctx, msg.MessageID)
			return fmt.Errorf("failed to load booking user: %w", err)
		}

		if err := sendBookingSMS(ctx, user, booking.StartTime); err != nil {
			if !errors.IsSkipMessage(err) {
				unmark(ctx, msg.MessageID)
				return err
			}
			logger.Logger.Info("Booking reminder suppressed",
				zap.Int64("booking_id", msg.BookingPublicID),
				zap.Error(err),
			)
		} else {
			if err := repository.MarkBookingReminderSent(db, booking.ID, time.Now()); err != nil {
				logger.Logger.Warn("Failed to mark booking reminder sent",
					zap.Int64("booking_id", msg.BookingPublicID),
					zap.Error(err),
				)
			}
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, processedTTL); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}
		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueBookingReminders,
		ConsumerTag:   "booking_reminder_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

func sendCurrencyReminder(ctx context.Context, db *gorm.DB, publicID int64, msg *model.CurrencyReminderMessage) error {
	user, err := repository.GetUserByPublicID(db, publicID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return &errors.SkipMessageError{Reason: "user no longer exists"}
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if len(user.PhoneCipher) == 0 {
		return &errors.SkipMessageError{Reason: "user has no phone on file"}
	}

	allowed, count, err := cache.CheckMonthlyReminderLimit(ctx, user.ID)
	if err != nil {
		logger.Logger.Warn("Failed to check monthly reminder limit",
			zap.Int64("user_id", publicID),
			zap.Error(err),
		)
	} else if !allowed {
		return &errors.SkipMessageError{Reason: fmt.Sprintf("monthly reminder cap reached (%d)", count)}
	}

	phone, err := utils.DecryptPhone(user.PhoneCipher)
	if err != nil {
		return fmt.Errorf("failed to decrypt phone: %w", err)
	}

	if err := sms.SendCurrencyReminder(ctx, phone, msg.VehicleType, msg.DaysRemaining); err != nil {
		return err
	}

	if err := cache.IncrementMonthlyReminderCount(ctx, user.ID); err != nil {
		logger.Logger.Warn("Failed to increment monthly reminder count",
			zap.Int64("user_id", publicID),
			zap.Error(err),
		)
	}
	return nil
}

func sendBookingSMS(ctx context.Context, user *model.User, startTime time.Time) error {
	if len(user.PhoneCipher) == 0 {
		return &errors.SkipMessageError{Reason: "user has no phone on file"}
	}

	allowed, count, err := cache.CheckMonthlyReminderLimit(ctx, user.ID)
	if err != nil {
		logger.Logger.Warn("Failed to check monthly reminder limit",
			zap.Int64("user_id", user.PublicID),
			zap.Error(err),
		)
	} else if !allowed {
		return &errors.SkipMessageError{Reason: fmt.Sprintf("monthly reminder cap reached (%d)", count)}
	}

	phone, err := utils.DecryptPhone(user.PhoneCipher)
	if err != nil {
		return fmt.Errorf("failed to decrypt phone: %w", err)
	}

	if err := sms.SendBookingReminder(ctx, phone, startTime); err != nil {
		return err
	}

	if err := cache.IncrementMonthlyReminderCount(ctx, user.ID); err != nil {
		logger.Logger.Warn("Failed to increment monthly reminder count",
			zap.Int64("user_id", user.PublicID),
			zap.Error(err),
		)
	}
	return nil
}

// StartAllConsumers runs every consumer and blocks until all of them exit.
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name     string
		consumer func(context.Context) error
	}{
		{"currency_reminder", StartCurrencyReminderConsumer},
		{"booking_reminder", StartBookingReminderConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, consumer func(context.Context) error) {
			defer wg.Done()

			logger.Logger.Info("Starting consumer",
				zap.String("consumer_name", name),
			)

			if err := consumer(ctx); err != nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer_name", name),
					zap.Error(err),
				)
			}
		}(c.name, c.consumer)
	}

	wg.Wait()
}

func unmark(ctx context.Context, messageID string) {
	if err := cache.UnmarkMessageProcessing(ctx, messageID); err != nil {
		logger.Logger.Warn("Failed to unmark message processing",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
