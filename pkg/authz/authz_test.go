package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeskhq/salesdesk-backend/pkg/enums"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
)

func TestRequireOwnershipAdminBypasses(t *testing.T) {
	actor := Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
	assert.NoError(t, RequireOwnership(actor, uuid.New()))
}

func TestRequireOwnershipOwnerPasses(t *testing.T) {
	employeeID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: enums.RoleEmployee, EmployeeID: &employeeID}
	assert.NoError(t, RequireOwnership(actor, employeeID))
}

func TestRequireOwnershipNonOwnerForbidden(t *testing.T) {
	employeeID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: enums.RoleEmployee, EmployeeID: &employeeID}

	err := RequireOwnership(actor, uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestRequireOwnershipEmployeeWithoutLinkForbidden(t *testing.T) {
	actor := Actor{UserID: uuid.New(), Role: enums.RoleEmployee}
	err := RequireOwnership(actor, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestRequireOwnershipCustomerForbidden(t *testing.T) {
	employeeID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: enums.RoleCustomer, EmployeeID: &employeeID}

	err := RequireOwnership(actor, employeeID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}
