package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/internal/repository"
	"FormUp/pkg/errors"
	"FormUp/storage/database"
)

type MSPService struct{}

var (
	mspService *MSPService
	mspOnce    sync.Once
)

func MSP() *MSPService {
	mspOnce.Do(func() {
		mspService = &MSPService{}
	})
	return mspService
}

// Create registers a servicing point. Codes are unique and uppercased.
func (s *MSPService) Create(ctx context.Context, req *dto.CreateMSPRequest) (*dto.MSPItem, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, errors.InvalidRequest
	}

	db := database.DB().WithContext(ctx)

	if _, err := repository.GetMSPByCode(db, code); err == nil {
		return nil, errors.InvalidRequest
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check MSP code: %w", err)
	}

	msp := &model.MSP{Code: code, Name: name}
	if err := repository.CreateMSP(db, msp); err != nil {
		return nil, fmt.Errorf("failed to create MSP: %w", err)
	}

	return &dto.MSPItem{ID: msp.ID, Code: msp.Code, Name: msp.Name}, nil
}

// List returns all servicing points.
func (s *MSPService) List(ctx context.Context) ([]dto.MSPItem, error) {
	db := database.DB().WithContext(ctx)

	msps, err := repository.ListMSPs(db)
	if err != nil {
		return nil, fmt.Errorf("failed to list MSPs: %w", err)
	}

	items := make([]dto.MSPItem, 0, len(msps))
	for _, m := range msps {
		items = append(items, dto.MSPItem{ID: m.ID, Code: m.Code, Name: m.Name})
	}
	return items, nil
}
