package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/api/responses"
	"github.com/salesdeskhq/salesdesk-backend/api/validators"
	"github.com/salesdeskhq/salesdesk-backend/internal/customers"
	"github.com/salesdeskhq/salesdesk-backend/pkg/authz"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
)

type customerService interface {
	Create(ctx context.Context, actor authz.Actor, input customers.CreateInput) (*models.Customer, error)
	List(ctx context.Context, values url.Values) ([]models.Customer, error)
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input customers.UpdateInput) (*models.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomersController exposes customer CRUD over HTTP.
type CustomersController struct {
	service customerService
	logg    *logger.Logger
}

func NewCustomersController(service customerService, logg *logger.Logger) *CustomersController {
	return &CustomersController{service: service, logg: logg}
}

func (c *CustomersController) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := requireActor(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var input customers.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	customer, err := c.service.Create(r.Context(), actor, input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, customer)
}

func (c *CustomersController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.List(r.Context(), r.URL.Query())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *CustomersController) Get(w http.ResponseWriter, r *http.Request) {
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

	customer, err := c.service.Get(r.Context(), actor, id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, customer)
}

func (c *CustomersController) Update(w http.ResponseWriter, r *http.Request) {
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

	var input customers.UpdateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	customer, err := c.service.Update(r.Context(), actor, id, input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, customer)
}

func (c *CustomersController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusNoContent, nil)
}
