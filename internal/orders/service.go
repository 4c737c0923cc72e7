package orders

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openmerch/shopcore/pkg/errors"
	"github.com/openmerch/shopcore/pkg/models"
)

// OrderService defines order data operations.
type OrderService interface {
	Place(ctx context.Context, req *models.OrderRequest) (*models.Order, error)
	Get(ctx context.Context, id uint) (*models.Order, error)
	Track(ctx context.Context, id uint) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, id uint, req *models.OrderRequest) (*models.Order, error)
	Delete(ctx context.Context, id uint) error
}

// Service implements OrderService
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

var _ OrderService = (*Service)(nil)

// NewService creates a new OrderService
func NewService(logger *zap.Logger, db *gorm.DB) (*Service, error) {
	return &Service{logger: logger, db: db}, nil
}

// Place persists a new order with its products attached. The order row and
// the join rows are written in one transaction so a failure leaves nothing
// behind.
func (s *Service) Place(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, errors.Invalid.Explain("invalid order date").
			WithField("datetime", "date", "must be a date in YYYY-MM-DD format")
	}

	if err := s.checkCustomerExists(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	products, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Date:       date,
		CustomerID: req.CustomerID,
		Products:   products,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, errors.New("failed to place order").Wrap(err)
	}

	s.logger.Info("order placed",
		zap.Uint("id", order.ID),
		zap.Uint("customer_id", order.CustomerID),
		zap.Int("products", len(products)))
	return order, nil
}

// Get fetches an order by id without expanding its products
func (s *Service) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound.Explain("order not found")
		}
		return nil, errors.New("failed to get order").Wrap(err)
	}
	return &order, nil
}

// Track fetches an order by id with its products preloaded
func (s *Service) Track(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Products").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound.Explain("order not found")
		}
		return nil, errors.New("failed to track order").Wrap(err)
	}
	return &order, nil
}

// List fetches all orders ordered by id
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	var list []models.Order
	if err := s.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, errors.New("failed to list orders").Wrap(err)
	}
	return list, nil
}

// Update replaces the date, customer and product set of an existing order
// in one transaction.
func (s *Service) Update(ctx context.Context, id uint, req *models.OrderRequest) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, errors.Invalid.Explain("invalid order date").
			WithField("datetime", "date", "must be a date in YYYY-MM-DD format")
	}
	if err := s.checkCustomerExists(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	products, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	order.Date = date
	order.CustomerID = req.CustomerID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		return tx.Model(order).Association("Products").Replace(products)
	})
	if err != nil {
		return nil, errors.New("failed to update order").Wrap(err)
	}

	s.logger.Info("order updated", zap.Uint("id", order.ID))
	return order, nil
}

// Delete removes an order by id; its join rows go with it.
func (s *Service) Delete(ctx context.Context, id uint) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Association("Products").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
	if err != nil {
		return errors.New("failed to delete order").Wrap(err)
	}

	s.logger.Info("order deleted", zap.Uint("id", id))
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

// resolveProducts loads every referenced product and rejects the request
// when any id is unknown, before a single row is written.
func (s *Service) resolveProducts(ctx context.Context, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, errors.New("failed to load products").Wrap(err)
	}

	if len(products) != len(unique(ids)) {
		return nil, errors.Invalid.Explain("one or more products do not exist").
			WithField("exists", "product_ids", "one or more products do not exist")
	}
	return products, nil
}

func unique(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
