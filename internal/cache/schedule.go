package cache

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"FormUp/storage/redis"
)

const (
	currencyReminderPrefix = "currency:reminder"
	bookingReminderPrefix  = "booking:reminder"
	reminderMonthlyPrefix  = "reminder:monthly"
	messageProcessedPrefix = "msg:processed"

	scheduledTTL = 48 * time.Hour
	processedTTL = 7 * 24 * time.Hour

	// MonthlyReminderLimit caps expiry SMS per user per month.
	MonthlyReminderLimit = 8
)

// ========== scheduler dedupe marks ==========

// IsCurrencyReminderScheduled reports whether the nightly scan already queued
// a reminder for this user+vehicle on the given date.
func IsCurrencyReminderScheduled(ctx context.Context, date string, userID int64, vehicleType string) (bool, error) {
	key := redis.Key(currencyReminderPrefix, date, fmt.Sprintf("%d", userID), vehicleType)
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

func MarkCurrencyReminderScheduled(ctx context.Context, date string, userID int64, vehicleType string) error {
	key := redis.Key(currencyReminderPrefix, date, fmt.Sprintf("%d", userID), vehicleType)
	return redis.Client().Set(ctx, key, "1", scheduledTTL).Err()
}

func IsBookingReminderScheduled(ctx context.Context, bookingID int64) (bool, error) {
	key := redis.Key(bookingReminderPrefix, fmt.Sprintf("%d", bookingID))
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

func MarkBookingReminderScheduled(ctx context.Context, bookingID int64) error {
	key := redis.Key(bookingReminderPrefix, fmt.Sprintf("%d", bookingID))
	return redis.Client().Set(ctx, key, "1", scheduledTTL).Err()
}

// ========== consumer idempotency ==========

// TryMarkMessageProcessing marks a message in-flight with SETNX. True means
// first delivery; false means a duplicate or concurrent delivery.
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// UnmarkMessageProcessing clears the mark so a failed message can retry.
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// MarkMessageProcessed finalizes the mark with a longer TTL.
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}
	return redis.Client().Set(ctx, key, "completed", ttl).Err()
}

// ========== monthly reminder cap ==========

// monthlyReminderKey is the single source of the counter key; the increment
// and the limit check must address the same key or the cap never trips.
func monthlyReminderKey(userID int64, t time.Time) string {
	return redis.Key(reminderMonthlyPrefix, fmt.Sprintf("%d", userID), monthKey(t))
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func GetMonthlyReminderCount(ctx context.Context, userID int64) (int, error) {
	key := monthlyReminderKey(userID, time.Now())
	count, err := redis.Client().Get(ctx, key).Int()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get monthly reminder count: %w", err)
	}
	return count, nil
}

// IncrementMonthlyReminderCount bumps the counter; it expires on the first of
// the next month.
func IncrementMonthlyReminderCount(ctx context.Context, userID int64) error {
	now := time.Now()
	key := monthlyReminderKey(userID, now)

	nextMonth := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	ttl := nextMonth.Sub(now)

	pipe := redis.Client().Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment monthly reminder count: %w", err)
	}
	return nil
}

// CheckMonthlyReminderLimit reports whether another reminder may be sent this
// month. Errors degrade to allowing the send.
func CheckMonthlyReminderLimit(ctx context.Context, userID int64) (bool, int, error) {
	count, err := GetMonthlyReminderCount(ctx, userID)
	if err != nil {
		return true, 0, err
	}
	return count < MonthlyReminderLimit, count, nil
}
