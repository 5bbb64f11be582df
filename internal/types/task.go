package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusCanceled   = "canceled"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityUrgent   = "urgent"
	PriorityCritical = "critical"
)

// Task mirrors the shape delivered by the task provider. The planner reads
// candidates and flips completion state; task content CRUD lives elsewhere.
type Task struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	ProjectID        *uuid.UUID     `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Title            string         `gorm:"not null" json:"title"`
	Status           string         `gorm:"not null;default:'todo';index" json:"status"`
	Priority         string         `gorm:"not null;default:'medium'" json:"priority"`
	DueDate          *time.Time     `gorm:"index" json:"due_date,omitempty"`
	StartAt          *time.Time     `json:"start_at,omitempty"`
	EarliestStartAt  *time.Time     `json:"earliest_start_at,omitempty"`
	LatestFinishAt   *time.Time     `json:"latest_finish_at,omitempty"`
	SnoozedUntil     *time.Time     `json:"snoozed_until,omitempty"`
	EstimatedMinutes *int           `json:"estimated_minutes,omitempty"`
	IsHardDue        bool           `gorm:"not null;default:false" json:"is_hard_due"`
	ContextEnergy    string         `json:"context_energy,omitempty"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	Dependencies     []*Task        `gorm:"many2many:task_dependency;joinForeignKey:TaskID;joinReferences:DependsOnID" json:"dependencies,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Task) TableName() string { return "task" }

func (t *Task) IsTerminal() bool {
	return t.Status == TaskStatusDone || t.Status == TaskStatusCanceled
}
