package customers

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openmerch/shopcore/pkg/errors"
	"github.com/openmerch/shopcore/pkg/models"
)

// CustomerService defines customer data operations.
type CustomerService interface {
	Create(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error)
	Get(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	Update(ctx context.Context, id uint, req *models.CustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id uint) error
}

// Service implements CustomerService
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

var _ CustomerService = (*Service)(nil)

// NewService creates a new CustomerService
func NewService(logger *zap.Logger, db *gorm.DB) (*Service, error) {
	return &Service{logger: logger, db: db}, nil
}

// Create persists a new customer
func (s *Service) Create(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, errors.New("failed to create customer").Wrap(err)
	}

	s.logger.Info("customer created", zap.Uint("id", customer.ID))
	return customer, nil
}

// Get fetches a customer by id
func (s *Service) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).First(&customer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound.Explain("customer not found")
		}
		return nil, errors.New("failed to get customer").Wrap(err)
	}
	return &customer, nil
}

// List fetches all customers ordered by id
func (s *Service) List(ctx context.Context) ([]models.Customer, error) {
	var list []models.Customer
	if err := s.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, errors.New("failed to list customers").Wrap(err)
	}
	return list, nil
}

// Update replaces the mutable fields of an existing customer
func (s *Service) Update(ctx context.Context, id uint, req *models.CustomerRequest) (*models.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	if err := s.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, errors.New("failed to update customer").Wrap(err)
	}

	s.logger.Info("customer updated", zap.Uint("id", customer.ID))
	return customer, nil
}

// Delete removes a customer by id. The policy is restrict: a customer that
// still owns orders or an account cannot be removed.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	var orderCount int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", id).Count(&orderCount).Error; err != nil {
		return errors.New("failed to count customer orders").Wrap(err)
	}
	if orderCount > 0 {
		return errors.Conflict.Explain("customer has %d orders and cannot be deleted", orderCount)
	}

	var accountCount int64
	if err := s.db.WithContext(ctx).Model(&models.CustomerAccount{}).Where("customer_id = ?", id).Count(&accountCount).Error; err != nil {
		return errors.New("failed to count customer accounts").Wrap(err)
	}
	if accountCount > 0 {
		return errors.Conflict.Explain("customer has an account and cannot be deleted")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Customer{}, id).Error; err != nil {
		return errors.New("failed to delete customer").Wrap(err)
	}

	s.logger.Info("customer deleted", zap.Uint("id", id))
	return nil
}
