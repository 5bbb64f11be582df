package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/types"
)

type TaskRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Task, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Task, error)
	GetCandidatesByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Task, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, completedAt *time.Time) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (r *taskRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var task types.Task
	if err := transaction.WithContext(ctx).
		Preload("Dependencies").
		First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Task
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetCandidatesByOwner loads every non-terminal task for the owner with its
// dependencies. The selector applies the date-range filters; keeping them in
// one place keeps preview and commit reading identical candidate sets.
func (r *taskRepo) GetCandidatesByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Preload("Dependencies").
		Where("owner_id = ? AND status NOT IN ?", ownerID, []string{types.TaskStatusDone, types.TaskStatusCanceled}).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taskRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, completedAt *time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	updates := map[string]interface{}{
		"status":       status,
		"completed_at": completedAt,
	}
	result := transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
