package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a staff member; customers and activities reference one as their
// responsible owner.
type Employee struct {
	ID         uuid.UUID `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `json:"name" gorm:"column:name;not null"`
	Email      string    `json:"email" gorm:"column:email;not null"`
	Phone      string    `json:"phone" gorm:"column:phone;not null"`
	Position   string    `json:"position" gorm:"column:position;not null"`
	Department string    `json:"department" gorm:"column:department;not null"`
	HireDate   time.Time `json:"hire_date" gorm:"column:hire_date;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
