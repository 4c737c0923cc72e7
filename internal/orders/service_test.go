package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openmerch/shopcore/internal/orders"
	"github.com/openmerch/shopcore/pkg/errors"
	"github.com/openmerch/shopcore/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newService(t *testing.T) (orders.OrderService, *gorm.DB) {
	db := setupTestDB(t)
	svc, err := orders.NewService(zap.NewNop(), db)
	require.NoError(t, err)
	return svc, db
}

func seedCustomer(t *testing.T, db *gorm.DB) uint {
	customer := &models.Customer{Name: "Buyer", Email: "buyer@example.com"}
	require.NoError(t, db.Create(customer).Error)
	return customer.ID
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) uint {
	product := &models.Product{Name: name, Price: price}
	require.NoError(t, db.Create(product).Error)
	return product.ID
}

func TestPlaceWithProducts(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	customerID := seedCustomer(t, db)
	widget := seedProduct(t, db, "Widget", 9.99)
	gadget := seedProduct(t, db, "Gadget", 19.99)

	order, err := svc.Place(ctx, &models.OrderRequest{
		Date:       "2024-06-01",
		CustomerID: customerID,
		ProductIDs: []uint{widget, gadget},
	})
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, "2024-06-01", order.Date.Format(models.DateLayout))

	tracked, err := svc.Track(ctx, order.ID)
	assert.NoError(t, err)
	assert.Len(t, tracked.Products, 2)
}

func TestPlaceWithoutProducts(t *testing.T) {
	svc, db := newService(t)
	customerID := seedCustomer(t, db)

	order, err := svc.Place(context.Background(), &models.OrderRequest{
		Date:       "2024-06-02",
		CustomerID: customerID,
	})
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestPlaceUnknownCustomer(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Place(context.Background(), &models.OrderRequest{
		Date:       "2024-06-01",
		CustomerID: 42,
	})
	assert.ErrorIs(t, err, errors.Invalid)
}

func TestPlaceUnknownProductWritesNothing(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	customerID := seedCustomer(t, db)

	_, err := svc.Place(ctx, &models.OrderRequest{
		Date:       "2024-06-01",
		CustomerID: customerID,
		ProductIDs: []uint{1234},
	})
	assert.ErrorIs(t, err, errors.Invalid)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetDoesNotExpandProducts(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	customerID := seedCustomer(t, db)
	widget := seedProduct(t, db, "Widget", 9.99)

	placed, err := svc.Place(ctx, &models.OrderRequest{
		Date:       "2024-06-01",
		CustomerID: customerID,
		ProductIDs: []uint{widget},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, customerID, got.CustomerID)
	assert.Empty(t, got.Products)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, errors.NotFound)
	_, err = svc.Track(context.Background(), 9)
	assert.ErrorIs(t, err, errors.NotFound)
}

func TestUpdateReplacesProductSet(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	customerID := seedCustomer(t, db)
	widget := seedProduct(t, db, "Widget", 9.99)
	gadget := seedProduct(t, db, "Gadget", 19.99)

	placed, err := svc.Place(ctx, &models.OrderRequest{
		Date:       "2024-06-01",
		CustomerID: customerID,
		ProductIDs: []uint{widget},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, placed.ID, &models.OrderRequest{
		Date:       "2024-07-01",
		CustomerID: customerID,
		ProductIDs: []uint{gadget},
	})
	assert.NoError(t, err)

	tracked, err := svc.Track(ctx, placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, "2024-07-01", tracked.Date.Format(models.DateLayout))
	require.Len(t, tracked.Products, 1)
	assert.Equal(t, "Gadget", tracked.Products[0].Name)
}

func TestDeleteRemovesJoinRows(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	customerID := seedCustomer(t, db)
	widget := seedProduct(t, db, "Widget", 9.99)

	placed, err := svc.Place(ctx, &models.OrderRequest{
		Date:       "2024-06-01",
		CustomerID: customerID,
		ProductIDs: []uint{widget},
	})
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, placed.ID))

	_, err = svc.Get(ctx, placed.ID)
	assert.ErrorIs(t, err, errors.NotFound)

	var joins int64
	require.NoError(t, db.Table("order_products").Count(&joins).Error)
	assert.Zero(t, joins)
}
