package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is catalog inventory; it has no ownership relation and its read
// endpoints are public.
type Product struct {
	ID              uuid.UUID       `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string          `json:"name" gorm:"column:name;not null"`
	Description     string          `json:"description" gorm:"column:description;not null"`
	Price           decimal.Decimal `json:"price" gorm:"column:price;type:numeric(12,2);not null"`
	Category        string          `json:"category" gorm:"column:category;not null"`
	Brand           string          `json:"brand" gorm:"column:brand;not null"`
	QuantityInStock int             `json:"quantity_in_stock" gorm:"column:quantity_in_stock;not null;default:0"`
	CreatedAt       time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
