package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/types"
)

type WorkGoalRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.WorkGoal, error)
	GetByLinkedTask(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) ([]*types.WorkGoal, error)
	UpdateProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID, progress float64) error
}

type workGoalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkGoalRepo(db *gorm.DB, baseLog *logger.Logger) WorkGoalRepo {
	return &workGoalRepo{db: db, log: baseLog.With("repo", "WorkGoalRepo")}
}

func (r *workGoalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.WorkGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var goal types.WorkGoal
	if err := transaction.WithContext(ctx).
		Preload("Tasks").
		First(&goal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *workGoalRepo) GetByLinkedTask(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) ([]*types.WorkGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.WorkGoal
	if err := transaction.WithContext(ctx).
		Preload("Tasks").
		Joins("JOIN work_goal_task ON work_goal_task.work_goal_id = work_goal.id").
		Where("work_goal_task.task_id = ?", taskID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *workGoalRepo) UpdateProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID, progress float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.WorkGoal{}).
		Where("id = ?", id).
		Update("progress_percentage", progress)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
