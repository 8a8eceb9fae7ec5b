package schedule

// Nightly currency scan: walk every qualification, derive its status and
// publish reminder batches for EXPIRING_SOON and EXPIRED qualifications.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"FormUp/config"
	"FormUp/internal/cache"
	"FormUp/internal/currency"
	"FormUp/internal/model"
	"FormUp/internal/queue"
	"FormUp/internal/repository"
	"FormUp/pkg/logger"
	"FormUp/storage/database"
)

const (
	scanPageSize = 500

	// Reminders fire mid-morning, not when the midnight scan finishes.
	reminderSendDelay = 8 * time.Hour
)

var (
	currencySchedulerOnce sync.Once
	currencySchedulerInst *CurrencyScheduler
)

type CurrencyScheduler struct {
	logger      *zap.Logger
	jobRunning  bool
	jobMu       sync.Mutex
	lastJobTime time.Time
}

func GetCurrencyScheduler() *CurrencyScheduler {
	currencySchedulerOnce.Do(func() {
		currencySchedulerInst = &CurrencyScheduler{
			logger: logger.Logger,
		}
	})
	return currencySchedulerInst
}

// ScanQualifications pages through all qualifications, derives each one's
// currency and publishes one delayed batch per (vehicle type, status) group.
func (s *CurrencyScheduler) ScanQualifications(ctx context.Context) error {
	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Currency scan already running, skipping")
		return nil
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	startTime := time.Now()
	s.lastJobTime = startTime
	today := startTime.Format("2006-01-02")
	batchID := uuid.NewString()

	s.logger.Info("Starting nightly currency scan",
		zap.String("batch_id", batchID),
		zap.String("scan_date", today),
	)

	db := database.DB().WithContext(ctx)

	type groupKey struct {
		vehicleType string
		status      currency.Status
	}
	groups := make(map[groupKey][]int64)
	remaining := make(map[groupKey]int)

	var scanned, excluded int
	for offset := 0; ; offset += scanPageSize {
		quals, err := repository.ListAllQualifications(db, offset, scanPageSize)
		if err != nil {
			return fmt.Errorf("failed to page qualifications: %w", err)
		}
		if len(quals) == 0 {
			break
		}

		for i := range quals {
			qual := &quals[i]
			scanned++

			derived := currency.Derive(qual.QualifiedOn, qual.LastDriveDate, startTime,
				config.Cfg.CurrencyValidityDays, config.Cfg.CurrencyWarningDays)
			if derived.Status == currency.StatusCurrent {
				continue
			}

			user, err := repository.GetUserByID(db, qual.UserID)
			if err != nil {
				continue
			}

			elig, err := repository.GetEligibility(db, user.ID)
			if err != nil {
				s.logger.Warn("Failed to load eligibility during scan",
					zap.Int64("user_id", user.PublicID),
					zap.Error(err),
				)
				continue
			}
			if elig.ActiveAt(startTime) {
				excluded++
				continue
			}

			scheduled, err := cache.IsCurrencyReminderScheduled(ctx, today, user.PublicID, qual.VehicleType)
			if err != nil {
				s.logger.Warn("Failed to check reminder scheduled status",
					zap.Int64("user_id", user.PublicID),
					zap.Error(err),
				)
			} else if scheduled {
				continue
			}

			key := groupKey{vehicleType: qual.VehicleType, status: derived.Status}
			groups[key] = append(groups[key], user.PublicID)
			if derived.DaysRemaining < remaining[key] || len(groups[key]) == 1 {
				remaining[key] = derived.DaysRemaining
			}

			if err := cache.MarkCurrencyReminderScheduled(ctx, today, user.PublicID, qual.VehicleType); err != nil {
				s.logger.Warn("Failed to mark reminder scheduled",
					zap.Int64("user_id", user.PublicID),
					zap.Error(err),
				)
			}
		}

		if len(quals) < scanPageSize {
			break
		}
	}

	var published int
	for key, userIDs := range groups {
		msg := model.CurrencyReminderMessage{
			BatchID:       batchID,
			ScanDate:      today,
			UserIDs:       userIDs,
			VehicleType:   key.vehicleType,
			Status:        string(key.status),
			DaysRemaining: remaining[key],
			DelaySeconds:  int(reminderSendDelay.Seconds()),
		}
		if err := queue.PublishCurrencyReminder(ctx, msg); err != nil {
			s.logger.Error("Failed to publish currency reminder batch",
				zap.String("vehicle_type", key.vehicleType),
				zap.String("status", string(key.status)),
				zap.Error(err),
			)
			continue
		}
		published++
	}

	s.logger.Info("Nightly currency scan done",
		zap.String("batch_id", batchID),
		zap.Int("scanned", scanned),
		zap.Int("excluded", excluded),
		zap.Int("batches_published", published),
		zap.Duration("took", time.Since(startTime)),
	)
	return nil
}

// RunNightly blocks, firing ScanQualifications shortly after each midnight.
// Development mode tightens the interval for local testing.
func (s *CurrencyScheduler) RunNightly(ctx context.Context) {
	if config.Cfg.Environment == "development" {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		s.logger.Info("Currency scheduler running in development mode with 1m interval")
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.ScanQualifications(ctx); err != nil {
					s.logger.Error("Currency scan failed", zap.Error(err))
				}
			}
		}
	}

	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, now.Location()).AddDate(0, 0, 1)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.ScanQualifications(ctx); err != nil {
				s.logger.Error("Currency scan failed", zap.Error(err))
			}
		}
	}
}
