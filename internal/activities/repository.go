package activities

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

// Repository owns activity persistence.
type Repository struct {
	db *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{db: client}
}

func (r *Repository) Create(ctx context.Context, activity *models.Activity) error {
	if err := r.db.DB().WithContext(ctx).Create(activity).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating activity")
	}
	return nil
}

// List applies the parsed query; ownerEmployeeID, when set, scopes the result
// to one employee's activities regardless of any client filter.
func (r *Repository) List(ctx context.Context, query *listing.Query, ownerEmployeeID *uuid.UUID) ([]models.Activity, error) {
	tx := r.db.DB().WithContext(ctx).Model(&models.Activity{})
	if ownerEmployeeID != nil {
		tx = tx.Where("employee_id = ?", *ownerEmployeeID)
	}

	var rows []models.Activity
	if err := query.Apply(tx).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing activities")
	}
	return rows, nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.DB().WithContext(ctx).First(&activity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "activity not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching activity")
	}
	return &activity, nil
}

func (r *Repository) Update(ctx context.Context, activity *models.Activity) error {
	if err := r.db.DB().WithContext(ctx).Save(activity).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating activity")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB().WithContext(ctx).Delete(&models.Activity{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "deleting activity")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "activity not found")
	}
	return nil
}
