package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesdeskhq/salesdesk-backend/pkg/types"
)

// Customer always belongs to exactly one responsible employee.
type Customer struct {
	ID         uuid.UUID     `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string        `json:"name" gorm:"column:name;not null"`
	Email      string        `json:"email" gorm:"column:email;not null;uniqueIndex"`
	Phone      string        `json:"phone" gorm:"column:phone;not null"`
	Address    types.Address `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	EmployeeID uuid.UUID     `json:"employee_id" gorm:"column:employee_id;type:uuid;not null"`
	CreatedAt  time.Time     `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
