// Package orders manages sales orders and their detail lines. An order is
// owned through its customer's responsible employee: employee-role callers may
// only touch orders whose customer is assigned to them.
package orders

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdeskhq/salesdesk-backend/pkg/authz"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/listing"
	"github.com/salesdeskhq/salesdesk-backend/pkg/types"
)

var schema = listing.Schema{
	Filterable: map[string]listing.Column{
		"status":         listing.Text("status"),
		"payment_method": listing.Text("payment_method"),
		"customer_id":    listing.Text("customer_id"),
		"order_date":     listing.Time("order_date"),
		"total_amount":   listing.Number("total_amount"),
		"created_at":     listing.Time("created_at"),
	},
	Searchable: []string{"status", "payment_method"},
	Sortable: map[string]string{
		"order_date":   "order_date",
		"total_amount": "total_amount",
		"status":       "status",
		"created_at":   "created_at",
		"updated_at":   "updated_at",
	},
	Selectable: map[string]string{
		"id":             "id",
		"customer_id":    "customer_id",
		"order_date":     "order_date",
		"total_amount":   "total_amount",
		"status":         "status",
		"payment_method": "payment_method",
		"created_at":     "created_at",
		"updated_at":     "updated_at",
	},
	DefaultSort: listing.SortTerm{Column: "created_at", Desc: true},
}

// DetailInput is one order line in a create request.
type DetailInput struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateInput is the request body for a new order. Line subtotals and the
// order total are computed server side.
type CreateInput struct {
	CustomerID      uuid.UUID     `json:"customer_id" validate:"required"`
	OrderDate       time.Time     `json:"order_date"`
	Status          string        `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	PaymentMethod   string        `json:"payment_method" validate:"required"`
	ShippingAddress types.Address `json:"shipping_address" validate:"required"`
	Details         []DetailInput `json:"details" validate:"required,min=1,dive"`
}

// UpdateInput carries a partial update of the order header. Detail lines are
// immutable after creation; replacing them means a new order.
type UpdateInput struct {
	Status          *string        `json:"status,omitempty" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentMethod   *string        `json:"payment_method,omitempty" validate:"omitempty,min=1"`
	ShippingAddress *types.Address `json:"shipping_address,omitempty"`
	OrderDate       *time.Time     `json:"order_date,omitempty"`
}

type Service struct {
	repo   *Repository
	limits listing.Limits
}

func NewService(repo *Repository, limits listing.Limits) *Service {
	return &Service{repo: repo, limits: limits}
}

// Create validates the customer and every product, computes line subtotals and
// the order total, then persists everything atomically.
func (s *Service) Create(ctx context.Context, actor authz.Actor, input CreateInput) (*models.Order, error) {
	customer, err := s.repo.CustomerFor(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(actor, customer.EmployeeID); err != nil {
		return nil, err
	}

	details := make([]models.OrderDetail, 0, len(input.Details))
	total := decimal.Zero
	for _, line := range input.Details {
		exists, err := s.repo.ProductExists(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product does not exist").
				WithDetails(map[string]any{"product_id": line.ProductID.String()})
		}
		if line.Discount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative").
				WithDetails(map[string]any{"product_id": line.ProductID.String()})
		}

		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Sub(line.Discount)
		if subtotal.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount exceeds line amount").
				WithDetails(map[string]any{"product_id": line.ProductID.String()})
		}

		details = append(details, models.OrderDetail{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	order := &models.Order{
		CustomerID:      input.CustomerID,
		OrderDate:       orderDate,
		TotalAmount:     total,
		Status:          input.Status,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		Details:         details,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, values url.Values) ([]models.Order, error) {
	query, err := listing.Parse(values, schema, s.limits)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, query)
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOrderOwnership(ctx, actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input UpdateInput) (*models.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOrderOwnership(ctx, actor, order); err != nil {
		return nil, err
	}

	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.PaymentMethod != nil {
		order.PaymentMethod = *input.PaymentMethod
	}
	if input.ShippingAddress != nil {
		order.ShippingAddress = *input.ShippingAddress
	}
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) requireOrderOwnership(ctx context.Context, actor authz.Actor, order *models.Order) error {
	if actor.IsAdmin() {
		return nil
	}
	customer := order.Customer
	if customer == nil {
		loaded, err := s.repo.CustomerFor(ctx, order.CustomerID)
		if err != nil {
			return err
		}
		customer = loaded
	}
	return authz.RequireOwnership(actor, customer.EmployeeID)
}
