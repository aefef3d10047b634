package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/salesdeskhq/salesdesk-backend/pkg/db/types"
)

// Activity records an event owned by one employee, with optional participant
// employees.
type Activity struct {
	ID              uuid.UUID         `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID      uuid.UUID         `json:"employee_id" gorm:"column:employee_id;type:uuid;not null"`
	Type            string            `json:"type" gorm:"column:type;not null"`
	Description     string            `json:"description" gorm:"column:description;not null"`
	Date            time.Time         `json:"date" gorm:"column:date;not null"`
	Time            string            `json:"time" gorm:"column:time;not null"`
	Location        string            `json:"location" gorm:"column:location;not null"`
	DurationMinutes int               `json:"duration_minutes" gorm:"column:duration_minutes;not null"`
	Participants    dbtypes.UUIDArray `json:"participants" gorm:"column:participants;type:uuid[];not null;default:'{}'"`
	CreatedAt       time.Time         `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (a *Activity) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Participants == nil {
		a.Participants = dbtypes.UUIDArray{}
	}
	return nil
}
