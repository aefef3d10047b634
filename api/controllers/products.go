package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/api/responses"
	"github.com/salesdeskhq/salesdesk-backend/api/validators"
	"github.com/salesdeskhq/salesdesk-backend/internal/products"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
)

type productService interface {
	Create(ctx context.Context, input products.CreateInput) (*models.Product, error)
	List(ctx context.Context, values url.Values) ([]models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input products.UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductsController exposes catalog CRUD over HTTP.
type ProductsController struct {
	service productService
	logg    *logger.Logger
}

func NewProductsController(service productService, logg *logger.Logger) *ProductsController {
	return &ProductsController{service: service, logg: logg}
}

func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) {
	var input products.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	product, err := c.service.Create(r.Context(), input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, product)
}

func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.List(r.Context(), r.URL.Query())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *ProductsController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	product, err := c.service.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, product)
}

func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var input products.UpdateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	product, err := c.service.Update(r.Context(), id, input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, product)
}

func (c *ProductsController) Delete(w http.ResponseWriter, r *http.Request) {
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
