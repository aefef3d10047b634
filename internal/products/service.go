// Package products manages the catalog. Reads are public; writes are
// admin-only and gated by the router.
package products

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	"github.com/salesdeskhq/salesdesk-backend/pkg/listing"
)

var schema = listing.Schema{
	Filterable: map[string]listing.Column{
		"name":              listing.Text("name"),
		"price":             listing.Number("price"),
		"category":          listing.Text("category"),
		"brand":             listing.Text("brand"),
		"quantity_in_stock": listing.Number("quantity_in_stock"),
		"created_at":        listing.Time("created_at"),
	},
	Searchable: []string{"name", "description", "category", "brand"},
	Sortable: map[string]string{
		"name":              "name",
		"price":             "price",
		"category":          "category",
		"brand":             "brand",
		"quantity_in_stock": "quantity_in_stock",
		"created_at":        "created_at",
		"updated_at":        "updated_at",
	},
	Selectable: map[string]string{
		"id":                "id",
		"name":              "name",
		"description":       "description",
		"price":             "price",
		"category":          "category",
		"brand":             "brand",
		"quantity_in_stock": "quantity_in_stock",
		"created_at":        "created_at",
		"updated_at":        "updated_at",
	},
	DefaultSort: listing.SortTerm{Column: "created_at", Desc: true},
}

// CreateInput is the request body for a new product.
type CreateInput struct {
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description" validate:"required"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	Category        string          `json:"category" validate:"required"`
	Brand           string          `json:"brand" validate:"required"`
	QuantityInStock int             `json:"quantity_in_stock" validate:"gte=0"`
}

// UpdateInput carries a partial update; nil fields are left untouched, so
// quantity_in_stock can be set to zero explicitly.
type UpdateInput struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Category        *string          `json:"category,omitempty" validate:"omitempty,min=1"`
	Brand           *string          `json:"brand,omitempty" validate:"omitempty,min=1"`
	QuantityInStock *int             `json:"quantity_in_stock,omitempty" validate:"omitempty,gte=0"`
}

type Service struct {
	repo   *Repository
	limits listing.Limits
}

func NewService(repo *Repository, limits listing.Limits) *Service {
	return &Service{repo: repo, limits: limits}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	product := &models.Product{
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		Category:        input.Category,
		Brand:           input.Brand,
		QuantityInStock: input.QuantityInStock,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) List(ctx context.Context, values url.Values) ([]models.Product, error) {
	query, err := listing.Parse(values, schema, s.limits)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, query)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.QuantityInStock != nil {
		product.QuantityInStock = *input.QuantityInStock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
