package orders

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

// Repository owns order persistence. Orders and their detail lines are always
// written and removed in one transaction.
type Repository struct {
	db *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{db: client}
}

// Create inserts the order header and all detail lines atomically. A failure
// on any line leaves nothing behind.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		details := order.Details
		order.Details = nil

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].OrderID = order.ID
			if err := tx.Create(&details[i]).Error; err != nil {
				return err
			}
		}
		order.Details = details
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}
	return nil
}

func (r *Repository) List(ctx context.Context, query *listing.Query) ([]models.Order, error) {
	var rows []models.Order
	tx := query.Apply(r.db.DB().WithContext(ctx).Model(&models.Order{}))
	if err := tx.Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return rows, nil
}

// Get returns the order with its detail lines and owning customer loaded.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.DB().WithContext(ctx).
		Preload("Details").
		Preload("Customer").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching order")
	}
	return &order, nil
}

func (r *Repository) Update(ctx context.Context, order *models.Order) error {
	err := r.db.DB().WithContext(ctx).
		Omit("Details", "Customer").
		Save(order).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order")
	}
	return nil
}

// Delete removes the order and its detail lines in one transaction.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderDetail{}, "order_id = ?", id).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting order details")
		}
		result := tx.Delete(&models.Order{}, "id = ?", id)
		if result.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "deleting order")
		}
		if result.RowsAffected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil
	})
}

// CustomerFor resolves the customer an order belongs to; the service uses it
// for ownership checks before the order itself is touched.
func (r *Repository) CustomerFor(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.DB().WithContext(ctx).First(&customer, "id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer does not exist").
			WithDetails(map[string]any{"field": "customer_id"})
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching order customer")
	}
	return &customer, nil
}

// ProductExists reports whether a product id is present in the catalog.
func (r *Repository) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB().WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking product")
	}
	return count > 0, nil
}
