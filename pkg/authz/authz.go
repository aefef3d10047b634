package authz

import (
	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/pkg/enums"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
)

// Actor is the authenticated caller as seen by domain services. The middleware
// layer builds one from verified token claims.
type Actor struct {
	UserID     uuid.UUID
	Role       enums.Role
	EmployeeID *uuid.UUID
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdmin
}

// OwnsEmployee reports whether the actor is the employee with the given id.
func (a Actor) OwnsEmployee(employeeID uuid.UUID) bool {
	return a.Role == enums.RoleEmployee &&
		a.EmployeeID != nil &&
		*a.EmployeeID == employeeID
}

// RequireOwnership passes admins through and otherwise demands that the actor
// is the owning employee. Authenticated-but-not-owner callers get Forbidden,
// not Unauthorized: authentication already succeeded upstream.
func RequireOwnership(actor Actor, ownerEmployeeID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.OwnsEmployee(ownerEmployeeID) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to access this resource")
}
