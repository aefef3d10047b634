package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/api/responses"
	"github.com/salesdeskhq/salesdesk-backend/api/validators"
	"github.com/salesdeskhq/salesdesk-backend/internal/activities"
	"github.com/salesdeskhq/salesdesk-backend/pkg/authz"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
)

type activityService interface {
	Create(ctx context.Context, actor authz.Actor, input activities.CreateInput) (*models.Activity, error)
	List(ctx context.Context, actor authz.Actor, values url.Values) ([]models.Activity, error)
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Activity, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input activities.UpdateInput) (*models.Activity, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

// ActivitiesController exposes activity CRUD over HTTP.
type ActivitiesController struct {
	service activityService
	logg    *logger.Logger
}

func NewActivitiesController(service activityService, logg *logger.Logger) *ActivitiesController {
	return &ActivitiesController{service: service, logg: logg}
}

func (c *ActivitiesController) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := requireActor(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var input activities.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	activity, err := c.service.Create(r.Context(), actor, input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, activity)
}

func (c *ActivitiesController) List(w http.ResponseWriter, r *http.Request) {
	actor, err := requireActor(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	rows, err := c.service.List(r.Context(), actor, r.URL.Query())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *ActivitiesController) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := requireActor(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	activity, err := c.service.Get(r.Context(), actor, id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, activity)
}

func (c *ActivitiesController) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := requireActor(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var input activities.UpdateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	activity, err := c.service.Update(r.Context(), actor, id, input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, activity)
}

func (c *ActivitiesController) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := requireActor(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	if err := c.service.Delete(r.Context(), actor, id); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusNoContent, nil)
}
