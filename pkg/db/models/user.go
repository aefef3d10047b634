package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesdeskhq/salesdesk-backend/pkg/enums"
)

// User is a login identity. EmployeeID links the account to an employee record
// and drives ownership checks for employee-role users.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string     `json:"name" gorm:"column:name;not null"`
	Email        string     `json:"email" gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	Role         enums.Role `json:"role" gorm:"column:role;not null"`
	EmployeeID   *uuid.UUID `json:"employee_id,omitempty" gorm:"column:employee_id;type:uuid"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
