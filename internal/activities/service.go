// Package activities manages employee activity records such as meetings and
// calls. Each activity is owned by one employee; employee-role callers only
// see and edit their own, admins see everything.
package activities

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/pkg/authz"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	dbtypes "github.com/salesdeskhq/salesdesk-backend/pkg/db/types"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/listing"
)

var schema = listing.Schema{
	Filterable: map[string]listing.Column{
		"type":             listing.Text("type"),
		"employee_id":      listing.Text("employee_id"),
		"date":             listing.Time("date"),
		"location":         listing.Text("location"),
		"duration_minutes": listing.Number("duration_minutes"),
		"created_at":       listing.Time("created_at"),
	},
	Searchable: []string{"type", "description", "location"},
	Sortable: map[string]string{
		"date":             "date",
		"type":             "type",
		"duration_minutes": "duration_minutes",
		"created_at":       "created_at",
		"updated_at":       "updated_at",
	},
	Selectable: map[string]string{
		"id":               "id",
		"employee_id":      "employee_id",
		"type":             "type",
		"description":      "description",
		"date":             "date",
		"time":             "time",
		"location":         "location",
		"duration_minutes": "duration_minutes",
		"created_at":       "created_at",
		"updated_at":       "updated_at",
	},
	DefaultSort: listing.SortTerm{Column: "created_at", Desc: true},
}

// CreateInput is the request body for a new activity.
type CreateInput struct {
	EmployeeID      uuid.UUID   `json:"employee_id" validate:"required"`
	Type            string      `json:"type" validate:"required,oneof=meeting call email visit task"`
	Description     string      `json:"description" validate:"required"`
	Date            time.Time   `json:"date" validate:"required"`
	Time            string      `json:"time" validate:"required"`
	Location        string      `json:"location" validate:"required"`
	DurationMinutes int         `json:"duration_minutes" validate:"required,gt=0"`
	Participants    []uuid.UUID `json:"participants"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Type            *string      `json:"type,omitempty" validate:"omitempty,oneof=meeting call email visit task"`
	Description     *string      `json:"description,omitempty" validate:"omitempty,min=1"`
	Date            *time.Time   `json:"date,omitempty"`
	Time            *string      `json:"time,omitempty" validate:"omitempty,min=1"`
	Location        *string      `json:"location,omitempty" validate:"omitempty,min=1"`
	DurationMinutes *int         `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	Participants    *[]uuid.UUID `json:"participants,omitempty"`
}

type Service struct {
	repo   *Repository
	limits listing.Limits
}

func NewService(repo *Repository, limits listing.Limits) *Service {
	return &Service{repo: repo, limits: limits}
}

// Create stores a new activity. An employee may only log activities against
// their own employee record.
func (s *Service) Create(ctx context.Context, actor authz.Actor, input CreateInput) (*models.Activity, error) {
	if err := authz.RequireOwnership(actor, input.EmployeeID); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "activities may only be logged for your own employee record")
	}

	activity := &models.Activity{
		EmployeeID:      input.EmployeeID,
		Type:            input.Type,
		Description:     input.Description,
		Date:            input.Date,
		Time:            input.Time,
		Location:        input.Location,
		DurationMinutes: input.DurationMinutes,
		Participants:    dbtypes.UUIDArray(input.Participants),
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// List returns activities the actor may see. Employee-role callers are scoped
// to their own records before any client filters run.
func (s *Service) List(ctx context.Context, actor authz.Actor, values url.Values) ([]models.Activity, error) {
	query, err := listing.Parse(values, schema, s.limits)
	if err != nil {
		return nil, err
	}

	var owner *uuid.UUID
	if !actor.IsAdmin() {
		if actor.EmployeeID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no employee record linked to this account")
		}
		owner = actor.EmployeeID
	}
	return s.repo.List(ctx, query, owner)
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Activity, error) {
	activity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(actor, activity.EmployeeID); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input UpdateInput) (*models.Activity, error) {
	activity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(actor, activity.EmployeeID); err != nil {
		return nil, err
	}

	if input.Type != nil {
		activity.Type = *input.Type
	}
	if input.Description != nil {
		activity.Description = *input.Description
	}
	if input.Date != nil {
		activity.Date = *input.Date
	}
	if input.Time != nil {
		activity.Time = *input.Time
	}
	if input.Location != nil {
		activity.Location = *input.Location
	}
	if input.DurationMinutes != nil {
		activity.DurationMinutes = *input.DurationMinutes
	}
	if input.Participants != nil {
		activity.Participants = dbtypes.UUIDArray(*input.Participants)
	}

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	activity, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwnership(actor, activity.EmployeeID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
