package database

import (
	"time"

	"go.uber.org/zap"

	"FormUp/config"
	"FormUp/internal/model"
	"FormUp/internal/scoring"
	"FormUp/pkg/logger"
	"FormUp/pkg/snowflake"
	"FormUp/utils"
)

// Seed loads the default IPPT scoring table, creates the bootstrap admin when
// none exists, and is idempotent across restarts.
func Seed() error {
	if err := seedScoreBands(); err != nil {
		return err
	}
	return seedBootstrapAdmin()
}

func seedScoreBands() error {
	db := DB()

	var count int64
	if err := db.Model(&model.IpptScoreBand{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	bands := defaultScoreBands()
	if err := db.CreateInBatches(bands, 500).Error; err != nil {
		return err
	}

	logger.Logger.Info("Seeded IPPT scoring table",
		zap.Int("rows", len(bands)),
		zap.Int("age_groups", len(scoring.AgeGroups())),
	)
	return nil
}

// defaultScoreBands generates the canonical scoring table: 25 points per rep
// station, 50 for the run, with thresholds easing one step per age group.
func defaultScoreBands() []model.IpptScoreBand {
	var out []model.IpptScoreBand

	for gi, group := range scoring.AgeGroups() {
		// Rep stations: one extra rep per point, younger groups need more reps.
		for p := 1; p <= 25; p++ {
			situp := p + 15 - gi
			if situp < 1 {
				situp = 1
			}
			pushup := p + 12 - gi
			if pushup < 1 {
				pushup = 1
			}
			out = append(out,
				model.IpptScoreBand{AgeGroup: group, Station: model.StationSitUp, Threshold: situp, Points: p},
				model.IpptScoreBand{AgeGroup: group, Station: model.StationPushUp, Threshold: pushup, Points: p},
			)
		}

		// Run: 6 seconds per point, upper-bound thresholds, older groups get
		// more time for the same points.
		best := 510 + gi*12 // fastest full-score time for the group
		for p := 1; p <= 50; p++ {
			out = append(out, model.IpptScoreBand{
				AgeGroup:  group,
				Station:   model.StationRun,
				Threshold: best + (50-p)*6,
				Points:    p,
			})
		}
	}

	return out
}

func seedBootstrapAdmin() error {
	db := DB()

	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := config.Cfg.BootstrapAdminPassword
	if password == "" {
		if config.Cfg.IsProduction() {
			logger.Logger.Warn("No admin user exists and BOOTSTRAP_ADMIN_PASSWORD is not set")
			return nil
		}
		password = "changeme-now"
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return err
	}

	admin := &model.User{
		PublicID:      publicID,
		ServiceNumber: config.Cfg.BootstrapAdminServiceNo,
		FullName:      "System Administrator",
		Role:          model.RoleAdmin,
		DateOfBirth:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		PasswordHash:  hash,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Logger.Info("Bootstrap admin created",
		zap.String("service_number", admin.ServiceNumber),
	)
	return nil
}
