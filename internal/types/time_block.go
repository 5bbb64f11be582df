package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BlockKindTask   = "task"
	BlockKindBreak  = "break"
	BlockKindBuffer = "buffer"
)

const (
	BlockStatusPlanned    = "planned"
	BlockStatusCommitted  = "committed"
	BlockStatusInProgress = "in_progress"
	BlockStatusDone       = "done"
	BlockStatusSkipped    = "skipped"
	BlockStatusCanceled   = "canceled"
)

const (
	BlockSourceAuto   = "auto"
	BlockSourceManual = "manual"
)

// TimeBlock is the persisted unit of a committed plan. Blocks are never
// deleted by replanning; stale ones transition to canceled. No two blocks of
// the same owner in an occupying status may overlap.
type TimeBlock struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	TaskID    *uuid.UUID     `gorm:"type:uuid;index" json:"task_id,omitempty"`
	Task      *Task          `gorm:"constraint:OnDelete:SET NULL;foreignKey:TaskID;references:ID" json:"task,omitempty"`
	Title     string         `gorm:"not null" json:"title"`
	Kind      string         `gorm:"not null;default:'task';index" json:"kind"`
	Start     time.Time      `gorm:"not null;index" json:"start"`
	End       time.Time      `gorm:"not null;index" json:"end"`
	Status    string         `gorm:"not null;default:'planned';index" json:"status"`
	Source    string         `gorm:"not null;default:'auto'" json:"source"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TimeBlock) TableName() string { return "time_block" }

func (b *TimeBlock) DurationMinutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

// OccupyingBlockStatuses are the statuses that hold a slot on the calendar
// for overlap purposes.
var OccupyingBlockStatuses = []string{BlockStatusCommitted, BlockStatusInProgress, BlockStatusDone}
