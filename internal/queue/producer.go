package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"FormUp/internal/model"
	"FormUp/pkg/logger"
	"FormUp/storage/mq"
)

// PublishCurrencyReminder publishes a delayed currency reminder batch. The
// delay staggers sends through the morning instead of firing everything when
// the nightly scan completes.
func PublishCurrencyReminder(ctx context.Context, msg model.CurrencyReminderMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = "cur_" + uuid.NewString()
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second

	err := mq.PublishDelayedMessage(
		ctx,
		mq.DelayedExchange,
		mq.RoutingKeyCurrencyReminder,
		delay,
		msg,
	)
	if err != nil {
		logger.Logger.Error("Failed to publish currency reminder message",
			zap.String("batch_id", msg.BatchID),
			zap.Int("user_count", len(msg.UserIDs)),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published currency reminder message",
		zap.String("message_id", msg.MessageID),
		zap.String("batch_id", msg.BatchID),
		zap.String("vehicle_type", msg.VehicleType),
		zap.String("status", msg.Status),
		zap.Int("user_count", len(msg.UserIDs)),
		zap.Duration("delay", delay),
	)
	return nil
}

// PublishBookingReminder publishes a delayed message that fires shortly
// before a booking starts.
func PublishBookingReminder(ctx context.Context, msg model.BookingReminderMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = "bkg_" + uuid.NewString()
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second

	err := mq.PublishDelayedMessage(
		ctx,
		mq.DelayedExchange,
		mq.RoutingKeyBookingReminder,
		delay,
		msg,
	)
	if err != nil {
		logger.Logger.Error("Failed to publish booking reminder message",
			zap.Int64("booking_id", msg.BookingPublicID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published booking reminder message",
		zap.String("message_id", msg.MessageID),
		zap.Int64("booking_id", msg.BookingPublicID),
		zap.Duration("delay", delay),
	)
	return nil
}
