package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/internal/repository"
	"FormUp/pkg/errors"
	"FormUp/pkg/metrics"
	"FormUp/storage/database"
	"FormUp/utils"
)

type DriveLogService struct{}

var (
	driveLogService *DriveLogService
	driveLogOnce    sync.Once
)

func DriveLog() *DriveLogService {
	driveLogOnce.Do(func() {
		driveLogService = &DriveLogService{}
	})
	return driveLogService
}

// Create records a manually entered drive and advances the qualification's
// last drive date when the new drive is the latest.
func (s *DriveLogService) Create(ctx context.Context, userID string, req *dto.CreateDriveLogRequest) (*dto.DriveLogItem, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, errors.InvalidRequest
	}
	if date.After(utils.DateOnly(time.Now())) {
		return nil, errors.InvalidRequest
	}
	if req.DistanceKm <= 0 {
		return nil, errors.InvalidRequest
	}
	vehicleNo := strings.ToUpper(strings.TrimSpace(req.VehicleNo))
	if !utils.ValidateVehicleNo(vehicleNo) {
		return nil, errors.InvalidRequest
	}

	item, err := s.record(ctx, userID, normalizeVehicleType(req.VehicleType), date, req.DistanceKm, vehicleNo)
	if err != nil {
		return nil, err
	}

	metrics.RecordDriveRecorded(ctx, "manual")
	return item, nil
}

// Scan records a drive from a vehicle plate QR scan. The drive date is always
// today; the payload only carries what the plate sticker encodes.
func (s *DriveLogService) Scan(ctx context.Context, userID string, req *dto.ScanDriveRequest) (*dto.ScanDriveResponse, error) {
	vehicleNo := strings.ToUpper(strings.TrimSpace(req.VehicleNo))
	if !utils.ValidateVehicleNo(vehicleNo) {
		return nil, errors.InvalidScanPayload
	}
	vehicleType := normalizeVehicleType(req.VehicleType)
	if vehicleType == "" || req.DistanceKm <= 0 {
		return nil, errors.InvalidScanPayload
	}

	today := utils.DateOnly(time.Now())
	item, err := s.record(ctx, userID, vehicleType, today, req.DistanceKm, vehicleNo)
	if err != nil {
		return nil, err
	}

	metrics.RecordDriveRecorded(ctx, "scan")

	// Return the refreshed currency so the scanner UI can confirm on the spot.
	quals, err := Qualification().ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ScanDriveResponse{DriveLog: *item}
	for _, q := range quals {
		if q.VehicleType == vehicleType {
			resp.Qualification = q
			break
		}
	}
	return resp, nil
}

// List returns drive history, newest first.
func (s *DriveLogService) List(ctx context.Context, userID string, q *dto.DriveLogListQuery) ([]dto.DriveLogItem, error) {
	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit < 1 || limit > 200 {
		limit = 50
	}

	logs, err := repository.ListDriveLogsByUser(db, user.ID, normalizeVehicleType(q.VehicleType), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list drive logs: %w", err)
	}

	items := make([]dto.DriveLogItem, 0, len(logs))
	for i := range logs {
		items = append(items, s.toItem(&logs[i], user.PublicID))
	}
	return items, nil
}

// Delete removes a drive and recomputes the qualification's last drive date
// from the remaining history. Currency can only move backwards here.
func (s *DriveLogService) Delete(ctx context.Context, userID string, logID int64) error {
	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return err
	}

	log, err := repository.GetDriveLogByID(db, logID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.DriveLogNotFound
		}
		return fmt.Errorf("failed to query drive log: %w", err)
	}
	if log.UserID != user.ID {
		return errors.DriveLogNotFound
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := repository.DeleteDriveLog(tx, log.ID); err != nil {
			return fmt.Errorf("failed to delete drive log: %w", err)
		}

		qual, err := repository.GetQualification(tx, log.UserID, log.VehicleType)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to query qualification: %w", err)
		}

		latest, err := repository.LatestDriveDate(tx, log.UserID, log.VehicleType)
		if err != nil {
			return fmt.Errorf("failed to recompute last drive date: %w", err)
		}
		if err := repository.SetLastDriveDate(tx, qual.ID, latest); err != nil {
			return fmt.Errorf("failed to update last drive date: %w", err)
		}
		return nil
	})
}

// record is the shared write path for manual entry and scans. The log row and
// the last-drive-date advance commit together.
func (s *DriveLogService) record(ctx context.Context, userID, vehicleType string, date time.Time, distanceKm float64, vehicleNo string) (*dto.DriveLogItem, error) {
	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	qual, err := repository.GetQualification(db, user.ID, vehicleType)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotQualified
		}
		return nil, fmt.Errorf("failed to query qualification: %w", err)
	}

	elig, err := repository.GetEligibility(db, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligibility: %w", err)
	}
	if elig.ActiveAt(time.Now()) {
		return nil, errors.UserIneligible
	}

	log := &model.DriveLog{
		UserID:      user.ID,
		VehicleType: vehicleType,
		Date:        date,
		DistanceKm:  distanceKm,
		VehicleNo:   vehicleNo,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := repository.CreateDriveLog(tx, log); err != nil {
			return fmt.Errorf("failed to create drive log: %w", err)
		}
		if qual.LastDriveDate == nil || date.After(*qual.LastDriveDate) {
			if err := repository.SetLastDriveDate(tx, qual.ID, &date); err != nil {
				return fmt.Errorf("failed to advance last drive date: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	item := s.toItem(log, user.PublicID)
	return &item, nil
}

func (s *DriveLogService) toItem(log *model.DriveLog, publicID int64) dto.DriveLogItem {
	return dto.DriveLogItem{
		ID:          log.ID,
		UserID:      formatPublicID(publicID),
		VehicleType: log.VehicleType,
		Date:        formatDate(log.Date),
		DistanceKm:  log.DistanceKm,
		VehicleNo:   log.VehicleNo,
		CreatedAt:   log.CreatedAt.Format(time.RFC3339),
	}
}
