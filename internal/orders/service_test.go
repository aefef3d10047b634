package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salesdeskhq/salesdesk-backend/pkg/authz"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	"github.com/salesdeskhq/salesdesk-backend/pkg/enums"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/listing"
	"github.com/salesdeskhq/salesdesk-backend/pkg/types"
)

func newTestService(t *testing.T) (*Service, *Repository, *db.Client) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range []string{
		`CREATE TABLE customers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL,
			address_street TEXT,
			address_city TEXT,
			address_state TEXT,
			address_postal_code TEXT,
			employee_id TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			price NUMERIC NOT NULL,
			category TEXT NOT NULL,
			brand TEXT NOT NULL,
			quantity_in_stock INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			order_date DATETIME NOT NULL,
			total_amount NUMERIC NOT NULL,
			status TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			shipping_street TEXT,
			shipping_city TEXT,
			shipping_state TEXT,
			shipping_postal_code TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE order_details (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price NUMERIC NOT NULL,
			subtotal NUMERIC NOT NULL,
			discount NUMERIC NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
	} {
		require.NoError(t, conn.Exec(ddl).Error)
	}

	client := db.FromConn(conn)
	repo := NewRepository(client)
	return NewService(repo, listing.Limits{}), repo, client
}

func adminActor() authz.Actor {
	return authz.Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
}

func employeeActor(employeeID uuid.UUID) authz.Actor {
	return authz.Actor{UserID: uuid.New(), Role: enums.RoleEmployee, EmployeeID: &employeeID}
}

func seedCustomer(t *testing.T, client *db.Client, employeeID uuid.UUID) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:       "Ada Lovelace",
		Email:      uuid.NewString() + "@example.com",
		Phone:      "555-0100",
		EmployeeID: employeeID,
		Address:    types.Address{Street: "1 Main St", City: "Springfield", State: "OR", PostalCode: "97477"},
	}
	require.NoError(t, client.DB().Create(customer).Error)
	return customer
}

func seedProduct(t *testing.T, client *db.Client, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        "Widget",
		Description: "A widget",
		Price:       decimal.RequireFromString(price),
		Category:    "tools",
		Brand:       "Acme",
	}
	require.NoError(t, client.DB().Create(product).Error)
	return product
}

func orderInput(customerID uuid.UUID, details ...DetailInput) CreateInput {
	return CreateInput{
		CustomerID:      customerID,
		Status:          "pending",
		PaymentMethod:   "card",
		ShippingAddress: types.Address{Street: "1 Main St", City: "Springfield", State: "OR", PostalCode: "97477"},
		Details:         details,
	}
}

func TestCreateComputesTotals(t *testing.T) {
	svc, _, client := newTestService(t)
	ctx := context.Background()

	customer := seedCustomer(t, client, uuid.New())
	product := seedProduct(t, client, "19.99")

	order, err := svc.Create(ctx, adminActor(), orderInput(customer.ID,
		DetailInput{ProductID: product.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("19.99"), Discount: decimal.RequireFromString("5.00")},
	))
	require.NoError(t, err)

	require.Len(t, order.Details, 1)
	assert.True(t, order.Details[0].Subtotal.Equal(decimal.RequireFromString("54.97")), order.Details[0].Subtotal.String())
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("54.97")), order.TotalAmount.String())
	assert.False(t, order.OrderDate.IsZero())
}

func TestCreateRejectsUnknownCustomerAndProduct(t *testing.T) {
	svc, _, client := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor(), orderInput(uuid.New(),
		DetailInput{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.New(1, 0)},
	))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	customer := seedCustomer(t, client, uuid.New())
	_, err = svc.Create(ctx, adminActor(), orderInput(customer.ID,
		DetailInput{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.New(1, 0)},
	))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	var count int64
	require.NoError(t, client.DB().Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateEnforcesCustomerOwnership(t *testing.T) {
	svc, _, client := newTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	customer := seedCustomer(t, client, ownerID)
	product := seedProduct(t, client, "10.00")
	input := orderInput(customer.ID, DetailInput{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.New(10, 0)})

	_, err := svc.Create(ctx, employeeActor(uuid.New()), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	_, err = svc.Create(ctx, employeeActor(ownerID), input)
	require.NoError(t, err)
}

func TestRepositoryCreateIsAtomic(t *testing.T) {
	_, repo, client := newTestService(t)
	ctx := context.Background()

	customer := seedCustomer(t, client, uuid.New())
	detailID := uuid.New()

	// The second line reuses the first line's primary key, so its insert must
	// fail and roll the whole order back.
	order := &models.Order{
		CustomerID:    customer.ID,
		Status:        "pending",
		PaymentMethod: "card",
		TotalAmount:   decimal.New(20, 0),
		Details: []models.OrderDetail{
			{ID: detailID, ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.New(10, 0), Subtotal: decimal.New(10, 0)},
			{ID: detailID, ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.New(10, 0), Subtotal: decimal.New(10, 0)},
		},
	}
	err := repo.Create(ctx, order)
	require.Error(t, err)

	var orderCount, detailCount int64
	require.NoError(t, client.DB().Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, client.DB().Model(&models.OrderDetail{}).Count(&detailCount).Error)
	assert.EqualValues(t, 0, orderCount)
	assert.EqualValues(t, 0, detailCount)
}

func TestDeleteCascadesDetails(t *testing.T) {
	svc, _, client := newTestService(t)
	ctx := context.Background()

	customer := seedCustomer(t, client, uuid.New())
	product := seedProduct(t, client, "10.00")

	order, err := svc.Create(ctx, adminActor(), orderInput(customer.ID,
		DetailInput{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.New(10, 0)},
		DetailInput{ProductID: product.ID, Quantity: 2, UnitPrice: decimal.New(10, 0)},
	))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, order.ID))

	var detailCount int64
	require.NoError(t, client.DB().Model(&models.OrderDetail{}).Count(&detailCount).Error)
	assert.EqualValues(t, 0, detailCount)

	_, err = svc.Get(ctx, adminActor(), order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestGetEnforcesOwnershipThroughCustomer(t *testing.T) {
	svc, _, client := newTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	customer := seedCustomer(t, client, ownerID)
	product := seedProduct(t, client, "10.00")

	order, err := svc.Create(ctx, adminActor(), orderInput(customer.ID,
		DetailInput{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.New(10, 0)},
	))
	require.NoError(t, err)

	got, err := svc.Get(ctx, employeeActor(ownerID), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	require.Len(t, got.Details, 1)

	_, err = svc.Get(ctx, employeeActor(uuid.New()), order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestUpdatePatchesHeaderOnly(t *testing.T) {
	svc, _, client := newTestService(t)
	ctx := context.Background()

	customer := seedCustomer(t, client, uuid.New())
	product := seedProduct(t, client, "10.00")

	order, err := svc.Create(ctx, adminActor(), orderInput(customer.ID,
		DetailInput{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.New(10, 0)},
	))
	require.NoError(t, err)

	status := "shipped"
	updated, err := svc.Update(ctx, adminActor(), order.ID, UpdateInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "shipped", updated.Status)
	assert.Equal(t, order.PaymentMethod, updated.PaymentMethod)
	assert.True(t, updated.TotalAmount.Equal(order.TotalAmount))

	var detailCount int64
	require.NoError(t, client.DB().Model(&models.OrderDetail{}).Count(&detailCount).Error)
	assert.EqualValues(t, 1, detailCount)
}
