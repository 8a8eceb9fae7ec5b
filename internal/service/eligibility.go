package service

import (
	"context"
	"fmt"
	"sync"

	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/internal/repository"
	"FormUp/pkg/errors"
	"FormUp/storage/database"
)

type EligibilityService struct{}

var (
	eligibilityService *EligibilityService
	eligibilityOnce    sync.Once
)

func Eligibility() *EligibilityService {
	eligibilityOnce.Do(func() {
		eligibilityService = &EligibilityService{}
	})
	return eligibilityService
}

// Get returns a user's override state. No record reads as eligible.
func (s *EligibilityService) Get(ctx context.Context, userID string) (*dto.EligibilityItem, error) {
	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	elig, err := repository.GetEligibility(db, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligibility: %w", err)
	}

	item := &dto.EligibilityItem{UserID: userID, IsEligible: true}
	if elig != nil {
		item.IsEligible = elig.IsEligible
		item.Reason = elig.Reason
		item.IneligibilityType = string(elig.IneligibilityType)
		if elig.UntilDate != nil {
			d := formatDate(*elig.UntilDate)
			item.UntilDate = &d
		}
	}
	return item, nil
}

// Upsert sets or clears a user's override. Temporary exclusions need an end
// date; permanent ones must not carry one.
func (s *EligibilityService) Upsert(ctx context.Context, userID string, req *dto.UpsertEligibilityRequest) (*dto.EligibilityItem, error) {
	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	elig := &model.Eligibility{
		UserID:     user.ID,
		IsEligible: req.IsEligible,
		Reason:     req.Reason,
	}

	if !req.IsEligible {
		switch model.IneligibilityType(req.IneligibilityType) {
		case model.IneligibilityPermanent:
			if req.UntilDate != nil {
				return nil, errors.EligibilityInvalid
			}
			elig.IneligibilityType = model.IneligibilityPermanent
		case model.IneligibilityTemporary:
			if req.UntilDate == nil {
				return nil, errors.EligibilityInvalid
			}
			until, err := parseDate(*req.UntilDate)
			if err != nil {
				return nil, errors.EligibilityInvalid
			}
			elig.IneligibilityType = model.IneligibilityTemporary
			elig.UntilDate = &until
		default:
			return nil, errors.EligibilityInvalid
		}
	}

	if err := repository.UpsertEligibility(db, elig); err != nil {
		return nil, fmt.Errorf("failed to upsert eligibility: %w", err)
	}

	return s.Get(ctx, userID)
}
