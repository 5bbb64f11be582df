package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/types"
)

type DailyReviewRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, review *types.DailyReview) (*types.DailyReview, error)
	GetByOwnerAndDate(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, date time.Time) (*types.DailyReview, error)
	GetByOwnerInRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]*types.DailyReview, error)
	CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error)
}

type dailyReviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyReviewRepo(db *gorm.DB, baseLog *logger.Logger) DailyReviewRepo {
	return &dailyReviewRepo{db: db, log: baseLog.With("repo", "DailyReviewRepo")}
}

// Upsert writes the review keyed on (owner_id, date), so recomputation is
// idempotent.
func (r *dailyReviewRepo) Upsert(ctx context.Context, tx *gorm.DB, review *types.DailyReview) (*types.DailyReview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"tasks_planned", "tasks_completed", "completion_rate",
				"focus_time_minutes", "break_time_minutes",
				"productivity_score", "current_streak", "updated_at",
			}),
		}).
		Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *dailyReviewRepo) GetByOwnerAndDate(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, date time.Time) (*types.DailyReview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var review types.DailyReview
	err := transaction.WithContext(ctx).
		Where("owner_id = ? AND date = ?", ownerID, date).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *dailyReviewRepo) GetByOwnerInRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]*types.DailyReview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DailyReview
	if err := transaction.WithContext(ctx).
		Where("owner_id = ? AND date >= ? AND date < ?", ownerID, from, to).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *dailyReviewRepo) CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.DailyReview{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
