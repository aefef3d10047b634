package products

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

// Repository owns product persistence.
type Repository struct {
	db *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{db: client}
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.DB().WithContext(ctx).Create(product).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return nil
}

func (r *Repository) List(ctx context.Context, query *listing.Query) ([]models.Product, error) {
	var rows []models.Product
	tx := query.Apply(r.db.DB().WithContext(ctx).Model(&models.Product{}))
	if err := tx.Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return rows, nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.DB().WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching product")
	}
	return &product, nil
}

func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	if err := r.db.DB().WithContext(ctx).Save(product).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB().WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "deleting product")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
