package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/api/responses"
	"github.com/salesdeskhq/salesdesk-backend/api/validators"
	"github.com/salesdeskhq/salesdesk-backend/internal/orders"
	"github.com/salesdeskhq/salesdesk-backend/pkg/authz"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
)

type orderService interface {
	Create(ctx context.Context, actor authz.Actor, input orders.CreateInput) (*models.Order, error)
	List(ctx context.Context, values url.Values) ([]models.Order, error)
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input orders.UpdateInput) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrdersController exposes order CRUD over HTTP.
type OrdersController struct {
	service orderService
	logg    *logger.Logger
}

func NewOrdersController(service orderService, logg *logger.Logger) *OrdersController {
	return &OrdersController{service: service, logg: logg}
}

func (c *OrdersController) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := requireActor(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var input orders.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	order, err := c.service.Create(r.Context(), actor, input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, order)
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.List(r.Context(), r.URL.Query())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
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

	order, err := c.service.Get(r.Context(), actor, id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, order)
}

func (c *OrdersController) Update(w http.ResponseWriter, r *http.Request) {
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

	var input orders.UpdateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	order, err := c.service.Update(r.Context(), actor, id, input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, order)
}

func (c *OrdersController) Delete(w http.ResponseWriter, r *http.Request) {
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
