package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeskhq/salesdesk-backend/internal/products"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/types"
)

type stubProductService struct {
	created *models.Product
	listed  []models.Product
	err     error
}

func (s *stubProductService) Create(_ context.Context, input products.CreateInput) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &models.Product{ID: uuid.New(), Name: input.Name, Price: input.Price}
	return s.created, nil
}

func (s *stubProductService) List(context.Context, url.Values) ([]models.Product, error) {
	return s.listed, s.err
}

func (s *stubProductService) Get(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Product{ID: id, Name: "wrench"}, nil
}

func (s *stubProductService) Update(context.Context, uuid.UUID, products.UpdateInput) (*models.Product, error) {
	return nil, s.err
}

func (s *stubProductService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func productRouter(svc productService) *chi.Mux {
	ctrl := NewProductsController(svc, nil)
	r := chi.NewRouter()
	r.Post("/product", ctrl.Create)
	r.Get("/product", ctrl.List)
	r.Get("/product/{id}", ctrl.Get)
	r.Delete("/product/{id}", ctrl.Delete)
	return r
}

func TestProductCreateReturns201(t *testing.T) {
	svc := &stubProductService{}
	body := `{"name":"wrench","description":"a wrench","price":"19.99","category":"tools","brand":"Acme","quantity_in_stock":3}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/product", strings.NewReader(body))
	productRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.True(t, svc.created.Price.Equal(decimal.RequireFromString("19.99")))

	var payload models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "wrench", payload.Name)
}

func TestProductCreateRejectsInvalidBody(t *testing.T) {
	svc := &stubProductService{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/product", strings.NewReader(`{"name":""}`))
	productRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.created)

	var payload types.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, string(pkgerrors.CodeValidation), payload.Code)
}

func TestProductCreateRejectsUnknownFields(t *testing.T) {
	svc := &stubProductService{}
	body := `{"name":"wrench","description":"d","price":"1","category":"c","brand":"b","sneaky":"x"}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/product", strings.NewReader(body))
	productRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductGetRejectsMalformedID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/product/not-a-uuid", nil)
	productRouter(&stubProductService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductGetMapsNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/product/"+uuid.NewString(), nil)
	productRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var payload types.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "product not found", payload.Message)
}

func TestProductDeleteReturns204(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/product/"+uuid.NewString(), nil)
	productRouter(&stubProductService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
