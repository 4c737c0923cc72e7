package accounts

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openmerch/shopcore/pkg/errors"
	"github.com/openmerch/shopcore/pkg/models"
)

// AccountService defines customer-account data operations.
type AccountService interface {
	Create(ctx context.Context, req *models.AccountRequest) (*models.CustomerAccount, error)
	Get(ctx context.Context, id uint) (*models.CustomerAccount, error)
	List(ctx context.Context) ([]models.CustomerAccount, error)
	Update(ctx context.Context, id uint, req *models.AccountRequest) (*models.CustomerAccount, error)
	Delete(ctx context.Context, id uint) error
}

// Service implements AccountService
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

var _ AccountService = (*Service)(nil)

// NewService creates a new AccountService
func NewService(logger *zap.Logger, db *gorm.DB) (*Service, error) {
	return &Service{logger: logger, db: db}, nil
}

// Create persists a new account. The username must be free, the referenced
// customer must exist and must not already own an account. The password is
// hashed before it touches the store.
func (s *Service) Create(ctx context.Context, req *models.AccountRequest) (*models.CustomerAccount, error) {
	if err := s.checkCustomerExists(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, req, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password").Wrap(err)
	}

	account := &models.CustomerAccount{
		Username:     req.Username,
		PasswordHash: string(hash),
		CustomerID:   req.CustomerID,
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, errors.New("failed to create account").Wrap(err)
	}

	s.logger.Info("account created",
		zap.Uint("id", account.ID),
		zap.Uint("customer_id", account.CustomerID))
	return account, nil
}

// Get fetches an account by id
func (s *Service) Get(ctx context.Context, id uint) (*models.CustomerAccount, error) {
	var account models.CustomerAccount
	err := s.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound.Explain("account not found")
		}
		return nil, errors.New("failed to get account").Wrap(err)
	}
	return &account, nil
}

// List fetches all accounts ordered by id
func (s *Service) List(ctx context.Context) ([]models.CustomerAccount, error) {
	var list []models.CustomerAccount
	if err := s.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, errors.New("failed to list accounts").Wrap(err)
	}
	return list, nil
}

// Update replaces the mutable fields of an existing account, re-hashing
// the password and re-checking the uniqueness invariants.
func (s *Service) Update(ctx context.Context, id uint, req *models.AccountRequest) (*models.CustomerAccount, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCustomerExists(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, req, id); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password").Wrap(err)
	}

	account.Username = req.Username
	account.PasswordHash = string(hash)
	account.CustomerID = req.CustomerID
	if err := s.db.WithContext(ctx).Save(account).Error; err != nil {
		return nil, errors.New("failed to update account").Wrap(err)
	}

	s.logger.Info("account updated", zap.Uint("id", account.ID))
	return account, nil
}

// Delete removes an account by id
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.CustomerAccount{}, id)
	if result.Error != nil {
		return errors.New("failed to delete account").Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound.Explain("account not found")
	}

	s.logger.Info("account deleted", zap.Uint("id", id))
	return nil
}

func (s *Service) checkCustomerExists(ctx context.Context, customerID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customerID).Count(&count).Error; err != nil {
		return errors.New("failed to check customer").Wrap(err)
	}
	if count == 0 {
		return errors.Invalid.Explain("referenced customer does not exist").
			WithField("exists", "customer_id", "customer does not exist")
	}
	return nil
}

// checkUnique enforces the username and one-account-per-customer
// invariants, excluding the account being updated.
func (s *Service) checkUnique(ctx context.Context, req *models.AccountRequest, excludeID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.CustomerAccount{}).
		Where("username = ? AND id <> ?", req.Username, excludeID).
		Count(&count).Error; err != nil {
		return errors.New("failed to check username").Wrap(err)
	}
	if count > 0 {
		return errors.Conflict.Explain("username %q is already taken", req.Username)
	}

	if err := s.db.WithContext(ctx).Model(&models.CustomerAccount{}).
		Where("customer_id = ? AND id <> ?", req.CustomerID, excludeID).
		Count(&count).Error; err != nil {
		return errors.New("failed to check customer account").Wrap(err)
	}
	if count > 0 {
		return errors.Conflict.Explain("customer already has an account")
	}
	return nil
}
