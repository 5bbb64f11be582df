package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/clients/redis"
	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

func newTaskFixture(t *testing.T) (*gorm.DB, TaskService, WorkGoalService) {
	t.Helper()

	db := openTestDB(t)
	log := testLogger(t)
	goalSvc := NewWorkGoalService(db, log, repos.NewWorkGoalRepo(db, log))
	taskSvc := NewTaskService(db, log, redis.NoopPreviewCache{}, repos.NewTaskRepo(db, log), goalSvc)
	return db, taskSvc, goalSvc
}

func linkTaskToGoal(t *testing.T, db *gorm.DB, goalID, taskID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Exec(
		"INSERT INTO work_goal_task (work_goal_id, task_id) VALUES (?, ?)",
		goalID, taskID,
	).Error)
}

func TestUpdateTaskStatusValidation(t *testing.T) {
	_, svc, _ := newTaskFixture(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "paused")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), types.TaskStatusDone)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdateTaskStatusStampsCompletion(t *testing.T) {
	db, svc, _ := newTaskFixture(t)
	owner := uuid.New()
	task := seedTask(t, db, owner, "Finish draft", 30)

	updated, err := svc.UpdateStatus(context.Background(), owner, task.ID, types.TaskStatusDone)
	require.NoError(t, err)
	assert.Equal(t, types.TaskStatusDone, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// Reopening clears the completion stamp.
	updated, err = svc.UpdateStatus(context.Background(), owner, task.ID, types.TaskStatusTodo)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateTaskStatusScopedToOwner(t *testing.T) {
	db, svc, _ := newTaskFixture(t)
	task := seedTask(t, db, uuid.New(), "Someone else's", 30)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), task.ID, types.TaskStatusDone)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskCompletionRefreshesGoalProgress(t *testing.T) {
	db, svc, goalSvc := newTaskFixture(t)
	owner := uuid.New()

	goal := &types.WorkGoal{ID: uuid.New(), OwnerID: owner, Title: "Ship v1"}
	require.NoError(t, db.Create(goal).Error)

	taskA := seedTask(t, db, owner, "Write docs", 30)
	taskB := seedTask(t, db, owner, "Fix bugs", 30)
	linkTaskToGoal(t, db, goal.ID, taskA.ID)
	linkTaskToGoal(t, db, goal.ID, taskB.ID)

	_, err := svc.UpdateStatus(context.Background(), owner, taskA.ID, types.TaskStatusDone)
	require.NoError(t, err)

	reloaded, err := goalSvc.Get(context.Background(), owner, goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, reloaded.ProgressPercentage, 0.001)

	_, err = svc.UpdateStatus(context.Background(), owner, taskB.ID, types.TaskStatusDone)
	require.NoError(t, err)

	reloaded, err = goalSvc.Get(context.Background(), owner, goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, reloaded.ProgressPercentage, 0.001)
}

func TestGoalWithNoTasksSitsAtZero(t *testing.T) {
	db, _, goalSvc := newTaskFixture(t)
	owner := uuid.New()

	goal := &types.WorkGoal{ID: uuid.New(), OwnerID: owner, Title: "Empty goal"}
	require.NoError(t, db.Create(goal).Error)

	recomputed, err := goalSvc.RecomputeProgress(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, recomputed.ProgressPercentage, 0.001)
}
