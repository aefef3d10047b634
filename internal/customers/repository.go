package customers

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

// Repository owns customer persistence.
type Repository struct {
	db *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{db: client}
}

func (r *Repository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.DB().WithContext(ctx).Create(customer).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "a customer with this email already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating customer")
	}
	return nil
}

func (r *Repository) List(ctx context.Context, query *listing.Query) ([]models.Customer, error) {
	var rows []models.Customer
	tx := query.Apply(r.db.DB().WithContext(ctx).Model(&models.Customer{}))
	if err := tx.Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing customers")
	}
	return rows, nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.DB().WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching customer")
	}
	return &customer, nil
}

func (r *Repository) Update(ctx context.Context, customer *models.Customer) error {
	if err := r.db.DB().WithContext(ctx).Save(customer).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "a customer with this email already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating customer")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB().WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "deleting customer")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return nil
}
