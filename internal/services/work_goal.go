package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

// WorkGoalService keeps goal progress in sync with linked task completion.
// Progress is derived, never hand-edited.
type WorkGoalService interface {
	Get(ctx context.Context, ownerID, goalID uuid.UUID) (*types.WorkGoal, error)
	RecomputeProgress(ctx context.Context, goalID uuid.UUID) (*types.WorkGoal, error)
	RecomputeForTask(ctx context.Context, taskID uuid.UUID) error
}

type workGoalService struct {
	db       *gorm.DB
	log      *logger.Logger
	goalRepo repos.WorkGoalRepo
}

func NewWorkGoalService(db *gorm.DB, log *logger.Logger, goalRepo repos.WorkGoalRepo) WorkGoalService {
	return &workGoalService{
		db:       db,
		log:      log.With("service", "WorkGoalService"),
		goalRepo: goalRepo,
	}
}

func (s *workGoalService) Get(ctx context.Context, ownerID, goalID uuid.UUID) (*types.WorkGoal, error) {
	goal, err := s.goalRepo.GetByID(ctx, nil, goalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	if goal.OwnerID != ownerID {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}

// RecomputeProgress recalculates the done ratio over linked tasks. A goal with
// no linked tasks sits at 0, not 100.
func (s *workGoalService) RecomputeProgress(ctx context.Context, goalID uuid.UUID) (*types.WorkGoal, error) {
	goal, err := s.goalRepo.GetByID(ctx, nil, goalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	progress := goalProgress(goal.Tasks)
	if err := s.goalRepo.UpdateProgress(ctx, nil, goal.ID, progress); err != nil {
		return nil, err
	}
	goal.ProgressPercentage = progress
	return goal, nil
}

// RecomputeForTask refreshes every goal linked to the given task. Called after
// a task status change.
func (s *workGoalService) RecomputeForTask(ctx context.Context, taskID uuid.UUID) error {
	goals, err := s.goalRepo.GetByLinkedTask(ctx, nil, taskID)
	if err != nil {
		return err
	}
	for _, goal := range goals {
		progress := goalProgress(goal.Tasks)
		if err := s.goalRepo.UpdateProgress(ctx, nil, goal.ID, progress); err != nil {
			return err
		}
		s.log.Debug("Recomputed goal progress", "goal_id", goal.ID, "progress", progress)
	}
	return nil
}

func goalProgress(tasks []*types.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == types.TaskStatusDone {
			done++
		}
	}
	return 100 * float64(done) / float64(len(tasks))
}
