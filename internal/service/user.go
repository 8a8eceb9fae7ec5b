package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"FormUp/config"
	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/internal/repository"
	"FormUp/pkg/errors"
	"FormUp/pkg/snowflake"
	"FormUp/storage/database"
	"FormUp/utils"
)

type UserService struct{}

var (
	userService *UserService
	userOnce    sync.Once
)

func User() *UserService {
	userOnce.Do(func() {
		userService = &UserService{}
	})
	return userService
}

// Create enrols a new user. The initial credit grant and the user row commit
// together so the ledger always explains the balance.
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserItem, error) {
	serviceNumber := strings.ToUpper(strings.TrimSpace(req.ServiceNumber))
	if !utils.ValidateServiceNumber(serviceNumber) {
		return nil, errors.InvalidRequest
	}
	if !model.ValidRole(req.Role) {
		return nil, errors.InvalidRequest
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, errors.PasswordTooWeak
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, errors.InvalidRequest
	}

	db := database.DB().WithContext(ctx)

	if _, err := repository.GetUserByServiceNumber(db, serviceNumber); err == nil {
		return nil, errors.ServiceNumberTaken
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check service number: %w", err)
	}

	var mspName string
	if req.MSPID != nil {
		msp, err := repository.GetMSPByID(db, *req.MSPID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.MSPNotFound
			}
			return nil, fmt.Errorf("failed to check MSP: %w", err)
		}
		mspName = msp.Name
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	user := &model.User{
		PublicID:      publicID,
		ServiceNumber: serviceNumber,
		FullName:      strings.TrimSpace(req.FullName),
		Rank:          strings.ToUpper(strings.TrimSpace(req.Rank)),
		Role:          model.Role(req.Role),
		MSPID:         req.MSPID,
		DateOfBirth:   dob,
		PasswordHash:  hash,
	}

	if req.Phone != "" {
		if !utils.ValidatePhone(req.Phone) {
			return nil, errors.InvalidRequest
		}
		cipher, err := utils.EncryptPhone(req.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt phone: %w", err)
		}
		phoneHash := utils.HashPhone(req.Phone)
		user.PhoneCipher = cipher
		user.PhoneHash = &phoneHash
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := repository.CreateUser(tx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if config.Cfg.DefaultCreditBalance > 0 {
			if _, err := applyCreditChange(tx, user.ID, model.TransactionTypeGrant,
				model.CreditReasonInitialGrant, config.Cfg.DefaultCreditBalance, nil); err != nil {
				return err
			}
			user.CreditBalance = config.Cfg.DefaultCreditBalance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	item := userItem(user, mspName)
	return &item, nil
}

// List returns a roster page plus the unpaged total.
func (s *UserService) List(ctx context.Context, q *dto.UserListQuery) ([]dto.UserItem, int64, error) {
	db := database.DB().WithContext(ctx)

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := repository.ListUsers(db, repository.UserFilter{
		Role:   q.Role,
		MSPID:  q.MSPID,
		Search: strings.TrimSpace(q.Search),
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	mspNames, err := s.mspNames(db)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.UserItem, 0, len(users))
	for i := range users {
		var name string
		if users[i].MSPID != nil {
			name = mspNames[*users[i].MSPID]
		}
		items = append(items, userItem(&users[i], name))
	}
	return items, total, nil
}

// Get resolves one user by public ID.
func (s *UserService) Get(ctx context.Context, userID string) (*dto.UserItem, error) {
	db := database.DB().WithContext(ctx)

	user, err := s.mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	var mspName string
	if user.MSPID != nil {
		if msp, err := repository.GetMSPByID(db, *user.MSPID); err == nil {
			mspName = msp.Name
		}
	}

	item := userItem(user, mspName)
	return &item, nil
}

// Update patches profile fields. Role changes and MSP moves go through here.
func (s *UserService) Update(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserItem, error) {
	db := database.DB().WithContext(ctx)

	user, err := s.mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Rank != nil {
		updates["rank"] = strings.ToUpper(strings.TrimSpace(*req.Rank))
	}
	if req.Role != nil {
		if !model.ValidRole(*req.Role) {
			return nil, errors.InvalidRequest
		}
		updates["role"] = *req.Role
	}
	if req.MSPID != nil {
		if _, err := repository.GetMSPByID(db, *req.MSPID); err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.MSPNotFound
			}
			return nil, fmt.Errorf("failed to check MSP: %w", err)
		}
		updates["msp_id"] = *req.MSPID
	}
	if req.Phone != nil {
		if !utils.ValidatePhone(*req.Phone) {
			return nil, errors.InvalidRequest
		}
		cipher, err := utils.EncryptPhone(*req.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt phone: %w", err)
		}
		updates["phone_cipher"] = cipher
		updates["phone_hash"] = utils.HashPhone(*req.Phone)
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := repository.UpdateUser(db, user.ID, updates); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return s.Get(ctx, userID)
}

// Delete soft-deletes a user. Their bookings and qualifications stay in place
// for audit but drop out of listings via the users join.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	db := database.DB().WithContext(ctx)

	user, err := s.mustGetUser(db, userID)
	if err != nil {
		return err
	}

	if err := repository.DeleteUser(db, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// GrantCredits tops up a user's balance through the ledger.
func (s *UserService) GrantCredits(ctx context.Context, userID string, req *dto.GrantCreditsRequest) (*dto.CreditBalanceResponse, error) {
	if req.Amount <= 0 {
		return nil, errors.InvalidRequest
	}

	db := database.DB().WithContext(ctx)

	user, err := s.mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := applyCreditChange(tx, user.ID, model.TransactionTypeGrant,
			model.CreditReasonAdminGrant, req.Amount, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.GetCredits(ctx, userID)
}

// GetCredits returns the balance with recent ledger entries.
func (s *UserService) GetCredits(ctx context.Context, userID string) (*dto.CreditBalanceResponse, error) {
	db := database.DB().WithContext(ctx)

	user, err := s.mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	entries, err := repository.ListCreditTransactions(db, user.ID, 50)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit transactions: %w", err)
	}

	resp := &dto.CreditBalanceResponse{
		Balance:      user.CreditBalance,
		Transactions: make([]dto.CreditTransaction, 0, len(entries)),
	}
	for _, e := range entries {
		item := dto.CreditTransaction{
			Type:         string(e.TransactionType),
			Reason:       e.Reason,
			Amount:       e.Amount,
			BalanceAfter: e.BalanceAfter,
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		}
		if e.BookingID != nil {
			item.BookingID = formatPublicID(*e.BookingID)
		}
		resp.Transactions = append(resp.Transactions, item)
	}
	return resp, nil
}

func (s *UserService) mustGetUser(db *gorm.DB, userID string) (*model.User, error) {
	publicID, err := parsePublicID(userID)
	if err != nil {
		return nil, err
	}
	user, err := repository.GetUserByPublicID(db, publicID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.UserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *UserService) mspNames(db *gorm.DB) (map[int64]string, error) {
	msps, err := repository.ListMSPs(db)
	if err != nil {
		return nil, fmt.Errorf("failed to list MSPs: %w", err)
	}
	names := make(map[int64]string, len(msps))
	for _, m := range msps {
		names[m.ID] = m.Name
	}
	return names, nil
}
