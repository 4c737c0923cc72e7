package products

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openmerch/shopcore/pkg/errors"
	"github.com/openmerch/shopcore/pkg/models"
)

// ProductService defines product data operations.
type ProductService interface {
	Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id uint, req *models.ProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

// Service implements ProductService
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

var _ ProductService = (*Service)(nil)

// NewService creates a new ProductService
func NewService(logger *zap.Logger, db *gorm.DB) (*Service, error) {
	return &Service{logger: logger, db: db}, nil
}

// Create persists a new product
func (s *Service) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:  req.Name,
		Price: *req.Price,
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, errors.New("failed to create product").Wrap(err)
	}

	s.logger.Info("product created", zap.Uint("id", product.ID))
	return product, nil
}

// Get fetches a product by id
func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound.Explain("product not found")
		}
		return nil, errors.New("failed to get product").Wrap(err)
	}
	return &product, nil
}

// List fetches all products ordered by id
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, errors.New("failed to list products").Wrap(err)
	}
	return list, nil
}

// Update replaces the mutable fields of an existing product
func (s *Service) Update(ctx context.Context, id uint, req *models.ProductRequest) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Price = *req.Price
	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, errors.New("failed to update product").Wrap(err)
	}

	s.logger.Info("product updated", zap.Uint("id", product.ID))
	return product, nil
}

// Delete removes a product by id together with its join rows.
func (s *Service) Delete(ctx context.Context, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(product).Association("Orders").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if err != nil {
		return errors.New("failed to delete product").Wrap(err)
	}

	s.logger.Info("product deleted", zap.Uint("id", id))
	return nil
}
