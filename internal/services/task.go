package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/clients/redis"
	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

var validTaskStatuses = map[string]bool{
	types.TaskStatusTodo:       true,
	types.TaskStatusInProgress: true,
	types.TaskStatusDone:       true,
	types.TaskStatusCanceled:   true,
}

// TaskService covers the slice of task lifecycle the planner owns: status
// flips. Task content CRUD belongs to the provider that feeds the task table.
type TaskService interface {
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (*types.Task, error)
	UpdateStatus(ctx context.Context, ownerID, taskID uuid.UUID, status string) (*types.Task, error)
}

type taskService struct {
	db          *gorm.DB
	log         *logger.Logger
	cache       redis.PreviewCache
	taskRepo    repos.TaskRepo
	goalService WorkGoalService
	now         func() time.Time
}

func NewTaskService(
	db *gorm.DB,
	log *logger.Logger,
	cache redis.PreviewCache,
	taskRepo repos.TaskRepo,
	goalService WorkGoalService,
) TaskService {
	return &taskService{
		db:          db,
		log:         log.With("service", "TaskService"),
		cache:       cache,
		taskRepo:    taskRepo,
		goalService: goalService,
		now:         time.Now,
	}
}

func (s *taskService) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*types.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, nil, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// UpdateStatus flips the task status, stamps or clears completed_at, refreshes
// linked goal progress, and invalidates the owner's cached previews since the
// candidate set changed.
func (s *taskService) UpdateStatus(ctx context.Context, ownerID, taskID uuid.UUID, status string) (*types.Task, error) {
	if !validTaskStatuses[status] {
		return nil, ErrInvalidStatus
	}

	task, err := s.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if status == types.TaskStatusDone {
		now := s.now()
		completedAt = &now
	}

	if err := s.taskRepo.UpdateStatus(ctx, nil, task.ID, status, completedAt); err != nil {
		return nil, err
	}
	task.Status = status
	task.CompletedAt = completedAt

	if err := s.goalService.RecomputeForTask(ctx, task.ID); err != nil {
		return nil, err
	}
	s.cache.InvalidateOwner(ctx, ownerID)

	s.log.Info("Updated task status", "task_id", task.ID, "status", status)
	return task, nil
}
