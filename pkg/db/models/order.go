package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/salesdeskhq/salesdesk-backend/pkg/types"
)

// Order belongs to a customer; its owning employee is resolved through that
// customer. Deleting an order removes its details in the same transaction.
type Order struct {
	ID              uuid.UUID       `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID       `json:"customer_id" gorm:"column:customer_id;type:uuid;not null"`
	Customer        *Customer       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	OrderDate       time.Time       `json:"order_date" gorm:"column:order_date;not null"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"column:total_amount;type:numeric(12,2);not null"`
	Status          string          `json:"status" gorm:"column:status;not null"`
	PaymentMethod   string          `json:"payment_method" gorm:"column:payment_method;not null"`
	ShippingAddress types.Address   `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	Details         []OrderDetail   `json:"details,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderDetail is a single order line referencing a product.
type OrderDetail struct {
	ID        uuid.UUID       `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `json:"order_id" gorm:"column:order_id;type:uuid;not null"`
	ProductID uuid.UUID       `json:"product_id" gorm:"column:product_id;type:uuid;not null"`
	Quantity  int             `json:"quantity" gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"column:unit_price;type:numeric(12,2);not null"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"column:subtotal;type:numeric(12,2);not null"`
	Discount  decimal.Decimal `json:"discount" gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (d *OrderDetail) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
