package products

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salesdeskhq/salesdesk-backend/pkg/db"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/listing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.Exec(`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC NOT NULL,
		category TEXT NOT NULL,
		brand TEXT NOT NULL,
		quantity_in_stock INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)

	return NewService(NewRepository(db.FromConn(conn)), listing.Limits{})
}

func createInput(name, price string, stock int) CreateInput {
	return CreateInput{
		Name:            name,
		Description:     "a " + name,
		Price:           decimal.RequireFromString(price),
		Category:        "tools",
		Brand:           "Acme",
		QuantityInStock: stock,
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("wrench", "19.99", 4))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "wrench", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestGetMissingProductNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateAppliesExplicitZero(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("wrench", "19.99", 7))
	require.NoError(t, err)

	// Setting stock to zero must stick; an absent field must not reset it.
	zero := 0
	updated, err := svc.Update(ctx, created.ID, UpdateInput{QuantityInStock: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.QuantityInStock)
	assert.Equal(t, "wrench", updated.Name)

	newName := "torque wrench"
	updated, err = svc.Update(ctx, created.ID, UpdateInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "torque wrench", updated.Name)
	assert.Equal(t, 0, updated.QuantityInStock)
}

func TestListFiltersAndSorts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, p := range []struct {
		name, price string
	}{
		{"hammer", "9.99"},
		{"wrench", "19.99"},
		{"drill", "129.00"},
	} {
		_, err := svc.Create(ctx, createInput(p.name, p.price, 1))
		require.NoError(t, err)
	}

	rows, err := svc.List(ctx, url.Values{"price[gte]": {"10"}, "sort": {"-price"}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "drill", rows[0].Name)
	assert.Equal(t, "wrench", rows[1].Name)
}

func TestListSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("hammer", "9.99", 1))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createInput("wrench", "19.99", 1))
	require.NoError(t, err)

	rows, err := svc.List(ctx, url.Values{"search": {"HAMM"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hammer", rows[0].Name)
}

func TestListRejectsUnknownFilter(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.List(context.Background(), url.Values{"cost_basis": {"1"}})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("wrench", "19.99", 1))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
