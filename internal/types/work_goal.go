package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkGoal tracks completion of its linked tasks. ProgressPercentage is
// derived by the goal tracker and never hand-edited.
type WorkGoal struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title              string         `gorm:"not null" json:"title"`
	Description        string         `json:"description,omitempty"`
	TargetDate         *time.Time     `json:"target_date,omitempty"`
	ProgressPercentage float64        `gorm:"not null;default:0" json:"progress_percentage"`
	Tasks              []*Task        `gorm:"many2many:work_goal_task" json:"tasks,omitempty"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (WorkGoal) TableName() string { return "work_goal" }
