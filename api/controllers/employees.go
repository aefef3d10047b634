package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/api/responses"
	"github.com/salesdeskhq/salesdesk-backend/api/validators"
	"github.com/salesdeskhq/salesdesk-backend/internal/employees"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
)

type employeeService interface {
	Create(ctx context.Context, input employees.CreateInput) (*models.Employee, error)
	List(ctx context.Context, values url.Values) ([]models.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	Update(ctx context.Context, id uuid.UUID, input employees.UpdateInput) (*models.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeesController exposes employee CRUD over HTTP.
type EmployeesController struct {
	service employeeService
	logg    *logger.Logger
}

func NewEmployeesController(service employeeService, logg *logger.Logger) *EmployeesController {
	return &EmployeesController{service: service, logg: logg}
}

func (c *EmployeesController) Create(w http.ResponseWriter, r *http.Request) {
	var input employees.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	employee, err := c.service.Create(r.Context(), input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, employee)
}

func (c *EmployeesController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.List(r.Context(), r.URL.Query())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *EmployeesController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	employee, err := c.service.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, employee)
}

func (c *EmployeesController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var input employees.UpdateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	employee, err := c.service.Update(r.Context(), id, input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, employee)
}

func (c *EmployeesController) Delete(w http.ResponseWriter, r *http.Request) {
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
