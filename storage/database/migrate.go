package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"FormUp/internal/model"
	"FormUp/pkg/logger"
)

// Migrate runs the schema migration for all models.
func Migrate() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	err := db.AutoMigrate(
		&model.MSP{},
		&model.User{},
		&model.Qualification{},
		&model.DriveLog{},
		&model.IpptScoreBand{},
		&model.IpptAttempt{},
		&model.IpptSession{},
		&model.IpptSessionRow{},
		&model.Eligibility{},
		&model.Booking{},
		&model.CreditTransaction{},
	)

	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
