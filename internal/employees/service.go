// Package employees implements staff-record management. Every endpoint in this
// package is admin-only; the router enforces the role before a request reaches
// the service.
package employees

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	"github.com/salesdeskhq/salesdesk-backend/pkg/listing"
)

var schema = listing.Schema{
	Filterable: map[string]listing.Column{
		"name":       listing.Text("name"),
		"email":      listing.Text("email"),
		"phone":      listing.Text("phone"),
		"position":   listing.Text("position"),
		"department": listing.Text("department"),
		"hire_date":  listing.Time("hire_date"),
		"created_at": listing.Time("created_at"),
	},
	Searchable: []string{"name", "email", "phone", "position", "department"},
	Sortable: map[string]string{
		"name":       "name",
		"position":   "position",
		"department": "department",
		"hire_date":  "hire_date",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	Selectable: map[string]string{
		"id":         "id",
		"name":       "name",
		"email":      "email",
		"phone":      "phone",
		"position":   "position",
		"department": "department",
		"hire_date":  "hire_date",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	DefaultSort: listing.SortTerm{Column: "created_at", Desc: true},
}

// CreateInput is the request body for a new employee.
type CreateInput struct {
	Name       string    `json:"name" validate:"required"`
	Email      string    `json:"email" validate:"required,email"`
	Phone      string    `json:"phone" validate:"required"`
	Position   string    `json:"position" validate:"required"`
	Department string    `json:"department" validate:"required"`
	HireDate   time.Time `json:"hire_date" validate:"required"`
}

// UpdateInput carries a partial update; nil fields are left untouched, so a
// present-but-zero value still applies.
type UpdateInput struct {
	Name       *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Email      *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string    `json:"phone,omitempty" validate:"omitempty,min=1"`
	Position   *string    `json:"position,omitempty" validate:"omitempty,min=1"`
	Department *string    `json:"department,omitempty" validate:"omitempty,min=1"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
}

type Service struct {
	repo   *Repository
	limits listing.Limits
}

func NewService(repo *Repository, limits listing.Limits) *Service {
	return &Service{repo: repo, limits: limits}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Employee, error) {
	employee := &models.Employee{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Position:   input.Position,
		Department: input.Department,
		HireDate:   input.HireDate,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *Service) List(ctx context.Context, values url.Values) ([]models.Employee, error) {
	query, err := listing.Parse(values, schema, s.limits)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, query)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Employee, error) {
	employee, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Position != nil {
		employee.Position = *input.Position
	}
	if input.Department != nil {
		employee.Department = *input.Department
	}
	if input.HireDate != nil {
		employee.HireDate = *input.HireDate
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
