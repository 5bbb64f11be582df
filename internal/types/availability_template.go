package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityTemplate describes a recurring weekly working window.
// Weekday follows the provider convention: 0=Mon .. 6=Sun.
// StartTime/EndTime are wall-clock "HH:MM" strings.
type AvailabilityTemplate struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Weekday   int            `gorm:"not null" json:"weekday"`
	StartTime string         `gorm:"not null" json:"start_time"`
	EndTime   string         `gorm:"not null" json:"end_time"`
	IsWorkday bool           `gorm:"not null;default:true" json:"is_workday"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AvailabilityTemplate) TableName() string { return "availability_template" }
