package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	InsightPeakHours         = "peak_hours"
	InsightTaskDuration      = "task_duration"
	InsightBreakPattern      = "break_pattern"
	InsightWeeklyTrend       = "weekly_trend"
	InsightCompletionPattern = "completion_pattern"
)

// Insight is a mined productivity pattern. Regeneration deactivates the
// previous active row of the same type instead of deleting it, keeping an
// audit trail of what the engine believed when.
type Insight struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	InsightType     string         `gorm:"not null;index" json:"insight_type"`
	Data            datatypes.JSON `gorm:"type:jsonb" json:"data"`
	ConfidenceScore float64        `gorm:"not null;default:0" json:"confidence_score"`
	SampleSize      int            `gorm:"not null;default:0" json:"sample_size"`
	ValidFrom       time.Time      `gorm:"not null" json:"valid_from"`
	ValidUntil      *time.Time     `json:"valid_until,omitempty"`
	IsActive        bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Insight) TableName() string { return "insight" }
