package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BreakPolicy configures the focus/break cadence for an owner. When no active
// row exists the engine falls back to planner.DefaultPolicy (25/5/15/4/480).
type BreakPolicy struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	FocusMinutes         int            `gorm:"not null;default:25" json:"focus_minutes"`
	ShortBreakMinutes    int            `gorm:"not null;default:5" json:"short_break_minutes"`
	LongBreakMinutes     int            `gorm:"not null;default:15" json:"long_break_minutes"`
	LongEvery            int            `gorm:"not null;default:4" json:"long_every"`
	MaxDailyFocusMinutes int            `gorm:"not null;default:480" json:"max_daily_focus_minutes"`
	Active               bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BreakPolicy) TableName() string { return "break_policy" }
