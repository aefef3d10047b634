// Package customers manages customer records. Each customer belongs to one
// responsible employee; employee-role callers may only touch their own
// customers, admins see everything.
package customers

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/pkg/authz"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/listing"
	"github.com/salesdeskhq/salesdesk-backend/pkg/types"
)

var schema = listing.Schema{
	Filterable: map[string]listing.Column{
		"name":        listing.Text("name"),
		"email":       listing.Text("email"),
		"phone":       listing.Text("phone"),
		"employee_id": listing.Text("employee_id"),
		"city":        listing.Text("address_city"),
		"state":       listing.Text("address_state"),
		"created_at":  listing.Time("created_at"),
	},
	Searchable: []string{"name", "email", "phone"},
	Sortable: map[string]string{
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	Selectable: map[string]string{
		"id":          "id",
		"name":        "name",
		"email":       "email",
		"phone":       "phone",
		"employee_id": "employee_id",
		"created_at":  "created_at",
		"updated_at":  "updated_at",
	},
	DefaultSort: listing.SortTerm{Column: "created_at", Desc: true},
}

// CreateInput is the request body for a new customer.
type CreateInput struct {
	Name       string        `json:"name" validate:"required"`
	Email      string        `json:"email" validate:"required,email"`
	Phone      string        `json:"phone" validate:"required"`
	Address    types.Address `json:"address" validate:"required"`
	EmployeeID uuid.UUID     `json:"employee_id" validate:"required"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name       *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	Email      *string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string        `json:"phone,omitempty" validate:"omitempty,min=1"`
	Address    *types.Address `json:"address,omitempty"`
	EmployeeID *uuid.UUID     `json:"employee_id,omitempty"`
}

type Service struct {
	repo   *Repository
	limits listing.Limits
}

func NewService(repo *Repository, limits listing.Limits) *Service {
	return &Service{repo: repo, limits: limits}
}

// Create stores a new customer. An employee may only create customers assigned
// to themselves.
func (s *Service) Create(ctx context.Context, actor authz.Actor, input CreateInput) (*models.Customer, error) {
	if err := authz.RequireOwnership(actor, input.EmployeeID); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "customers may only be assigned to your own employee record")
	}

	customer := &models.Customer{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		EmployeeID: input.EmployeeID,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context, values url.Values) ([]models.Customer, error) {
	query, err := listing.Parse(values, schema, s.limits)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, query)
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(actor, customer.EmployeeID); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input UpdateInput) (*models.Customer, error) {
	customer, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(actor, customer.EmployeeID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.EmployeeID != nil {
		// Reassigning a customer to another employee is an admin operation.
		if !actor.IsAdmin() && *input.EmployeeID != customer.EmployeeID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only admins may reassign a customer")
		}
		customer.EmployeeID = *input.EmployeeID
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
