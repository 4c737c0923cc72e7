package products_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openmerch/shopcore/internal/products"
	"github.com/openmerch/shopcore/pkg/errors"
	"github.com/openmerch/shopcore/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newService(t *testing.T) products.ProductService {
	svc, err := products.NewService(zap.NewNop(), setupTestDB(t))
	require.NoError(t, err)
	return svc
}

func price(v float64) *float64 { return &v }

func TestCreateAndGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.ProductRequest{Name: "Widget", Price: price(9.99)})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 9.99, got.Price)
}

func TestZeroPriceAllowed(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), &models.ProductRequest{Name: "Freebie", Price: price(0)})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, created.Price)
}

func TestGetNotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.Get(context.Background(), 13)
	assert.ErrorIs(t, err, errors.NotFound)
}

func TestList(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.ProductRequest{Name: "First", Price: price(1)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.ProductRequest{Name: "Second", Price: price(2)})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Name)
	assert.Equal(t, "Second", list[1].Name)
}

func TestUpdateReplacesFieldsKeepsID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.ProductRequest{Name: "Old", Price: price(1)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &models.ProductRequest{Name: "New", Price: price(2.5)})
	assert.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, 2.5, updated.Price)
}

func TestDeleteThenGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.ProductRequest{Name: "Doomed", Price: price(3)})
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, errors.NotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), errors.NotFound)
}
