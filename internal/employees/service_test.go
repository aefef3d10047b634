package employees

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
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

	require.NoError(t, conn.Exec(`CREATE TABLE employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		position TEXT NOT NULL,
		department TEXT NOT NULL,
		hire_date DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)

	return NewService(NewRepository(db.FromConn(conn)), listing.Limits{})
}

func createInput(name, department string) CreateInput {
	return CreateInput{
		Name:       name,
		Email:      "staff@example.com",
		Phone:      "555-0100",
		Position:   "account manager",
		Department: department,
		HireDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("Alan Turing", "sales"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", got.Name)
	assert.Equal(t, "sales", got.Department)
}

func TestUpdatePatchSemantics(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("Alan Turing", "sales"))
	require.NoError(t, err)

	position := "director"
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Position: &position})
	require.NoError(t, err)

	assert.Equal(t, "director", updated.Position)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Department, updated.Department)
	assert.True(t, created.HireDate.Equal(updated.HireDate))
}

func TestUpdateMissingEmployeeNotFound(t *testing.T) {
	svc := newTestService(t)
	name := "nobody"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListSearchAndFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Alan Turing", "sales"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createInput("Ada Lovelace", "engineering"))
	require.NoError(t, err)

	rows, err := svc.List(ctx, url.Values{"department": {"sales"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alan Turing", rows[0].Name)

	rows, err = svc.List(ctx, url.Values{"search": {"lovelace"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada Lovelace", rows[0].Name)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("Alan Turing", "sales"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
