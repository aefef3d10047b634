package employees

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesdeskhq/salesdesk-backend/pkg/db"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/listing"
)

// Repository owns employee persistence.
type Repository struct {
	db *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{db: client}
}

func (r *Repository) Create(ctx context.Context, employee *models.Employee) error {
	if err := r.db.DB().WithContext(ctx).Create(employee).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating employee")
	}
	return nil
}

func (r *Repository) List(ctx context.Context, query *listing.Query) ([]models.Employee, error) {
	var rows []models.Employee
	tx := query.Apply(r.db.DB().WithContext(ctx).Model(&models.Employee{}))
	if err := tx.Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing employees")
	}
	return rows, nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.DB().WithContext(ctx).First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching employee")
	}
	return &employee, nil
}

func (r *Repository) Update(ctx context.Context, employee *models.Employee) error {
	if err := r.db.DB().WithContext(ctx).Save(employee).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating employee")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB().WithContext(ctx).Delete(&models.Employee{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "deleting employee")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
	}
	return nil
}
