package customers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openmerch/shopcore/internal/customers"
	"github.com/openmerch/shopcore/pkg/errors"
	"github.com/openmerch/shopcore/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newService(t *testing.T) (customers.CustomerService, *gorm.DB) {
	db := setupTestDB(t)
	svc, err := customers.NewService(zap.NewNop(), db)
	require.NoError(t, err)
	return svc, db
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	req := &models.CustomerRequest{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"}
	created, err := svc.Create(ctx, req)
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, req.Name, got.Name)
	assert.Equal(t, req.Email, got.Email)
	assert.Equal(t, req.Phone, got.Phone)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, errors.NotFound)
}

func TestList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CustomerRequest{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CustomerRequest{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "B", list[1].Name)
}

func TestUpdateReplacesFieldsKeepsID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CustomerRequest{Name: "Old", Email: "old@example.com", Phone: "1"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &models.CustomerRequest{Name: "New", Email: "new@example.com", Phone: "2"})
	assert.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "2", updated.Phone)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Update(context.Background(), 7, &models.CustomerRequest{Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, errors.NotFound)
}

func TestDeleteThenGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CustomerRequest{Name: "Gone", Email: "gone@example.com"})
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, errors.NotFound)
}

func TestDeleteRestrictedByOrders(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CustomerRequest{Name: "Busy", Email: "busy@example.com"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Order{Date: models.NewDate(2024, 6, 1), CustomerID: created.ID}).Error)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, errors.Conflict)

	// The customer is still there.
	_, err = svc.Get(ctx, created.ID)
	assert.NoError(t, err)
}

func TestDeleteRestrictedByAccount(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CustomerRequest{Name: "Holder", Email: "holder@example.com"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.CustomerAccount{
		Username:     "holder",
		PasswordHash: "x",
		CustomerID:   created.ID,
	}).Error)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, errors.Conflict)
}
