package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyReview is the per-owner-per-day metrics row. Recomputation upserts on
// (owner_id, date), so the batch job can rerun safely.
type DailyReview struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_owner_date,unique" json:"owner_id"`
	Date              time.Time      `gorm:"type:date;not null;index:idx_owner_date,unique" json:"date"`
	TasksPlanned      int            `gorm:"not null;default:0" json:"tasks_planned"`
	TasksCompleted    int            `gorm:"not null;default:0" json:"tasks_completed"`
	CompletionRate    float64        `gorm:"not null;default:0" json:"completion_rate"`
	FocusTimeMinutes  int            `gorm:"not null;default:0" json:"focus_time_minutes"`
	BreakTimeMinutes  int            `gorm:"not null;default:0" json:"break_time_minutes"`
	ProductivityScore float64        `gorm:"not null;default:0" json:"productivity_score"`
	CurrentStreak     int            `gorm:"not null;default:0" json:"current_streak"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DailyReview) TableName() string { return "daily_review" }
