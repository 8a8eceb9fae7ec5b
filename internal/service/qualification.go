package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"FormUp/config"
	"FormUp/internal/currency"
	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/internal/repository"
	"FormUp/pkg/errors"
	"FormUp/storage/database"
)

type QualificationService struct{}

var (
	qualificationService *QualificationService
	qualificationOnce    sync.Once
)

func Qualification() *QualificationService {
	qualificationOnce.Do(func() {
		qualificationService = &QualificationService{}
	})
	return qualificationService
}

// Create records a new vehicle qualification for a user.
func (s *QualificationService) Create(ctx context.Context, req *dto.CreateQualificationRequest) (*dto.QualificationItem, error) {
	vehicleType := normalizeVehicleType(req.VehicleType)
	if vehicleType == "" {
		return nil, errors.InvalidRequest
	}

	qualifiedOn, err := parseDate(req.QualifiedOn)
	if err != nil {
		return nil, errors.InvalidRequest
	}

	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, req.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := repository.GetQualification(db, user.ID, vehicleType); err == nil {
		return nil, errors.QualificationExists
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check qualification: %w", err)
	}

	qual := &model.Qualification{
		UserID:      user.ID,
		VehicleType: vehicleType,
		QualifiedOn: qualifiedOn,
	}
	if err := repository.CreateQualification(db, qual); err != nil {
		return nil, fmt.Errorf("failed to create qualification: %w", err)
	}

	item := s.toItem(qual, user, nil, time.Now())
	return &item, nil
}

// ListForUser returns a user's qualifications with derived currency.
func (s *QualificationService) ListForUser(ctx context.Context, userID string) ([]dto.QualificationItem, error) {
	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	quals, err := repository.ListQualificationsByUser(db, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualifications: %w", err)
	}

	elig, err := repository.GetEligibility(db, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligibility: %w", err)
	}

	now := time.Now()
	items := make([]dto.QualificationItem, 0, len(quals))
	for i := range quals {
		items = append(items, s.toItem(&quals[i], user, elig, now))
	}
	return items, nil
}

// ListForMSP returns the currency dashboard rows for a sub-unit, optionally
// filtered to one derived status.
func (s *QualificationService) ListForMSP(ctx context.Context, mspID int64, status string) ([]dto.QualificationItem, error) {
	db := database.DB().WithContext(ctx)

	if _, err := repository.GetMSPByID(db, mspID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.MSPNotFound
		}
		return nil, fmt.Errorf("failed to check MSP: %w", err)
	}

	quals, err := repository.ListQualificationsByMSP(db, mspID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualifications: %w", err)
	}

	now := time.Now()
	items := make([]dto.QualificationItem, 0, len(quals))
	for i := range quals {
		user, err := repository.GetUserByID(db, quals[i].UserID)
		if err != nil {
			continue
		}
		elig, err := repository.GetEligibility(db, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load eligibility: %w", err)
		}
		item := s.toItem(&quals[i], user, elig, now)
		if status != "" && item.Status != status {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Delete removes a qualification and its derived tracking.
func (s *QualificationService) Delete(ctx context.Context, id string) error {
	qualID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return errors.QualificationNotFound
	}

	db := database.DB().WithContext(ctx)

	qual, err := repository.GetQualificationByID(db, qualID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.QualificationNotFound
		}
		return fmt.Errorf("failed to query qualification: %w", err)
	}

	if err := repository.DeleteQualification(db, qual.ID); err != nil {
		return fmt.Errorf("failed to delete qualification: %w", err)
	}
	return nil
}

// toItem attaches the derived currency block. An active ineligibility override
// suppresses tracking: the row still lists but reads as not eligible.
func (s *QualificationService) toItem(q *model.Qualification, u *model.User, elig *model.Eligibility, now time.Time) dto.QualificationItem {
	derived := currency.Derive(q.QualifiedOn, q.LastDriveDate, now,
		config.Cfg.CurrencyValidityDays, config.Cfg.CurrencyWarningDays)

	item := dto.QualificationItem{
		ID:            q.ID,
		UserID:        formatPublicID(u.PublicID),
		ServiceNumber: u.ServiceNumber,
		FullName:      u.FullName,
		VehicleType:   q.VehicleType,
		QualifiedOn:   formatDate(q.QualifiedOn),
		Status:        string(derived.Status),
		DaysRemaining: derived.DaysRemaining,
		IsEligible:    !elig.ActiveAt(now),
	}
	if q.LastDriveDate != nil {
		d := formatDate(*q.LastDriveDate)
		item.LastDriveDate = &d
	}
	return item
}

func normalizeVehicleType(vt string) string {
	return strings.ToLower(strings.TrimSpace(vt))
}
