package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

func newMetricsFixture(t *testing.T) (*gorm.DB, MetricsService) {
	t.Helper()

	db := openTestDB(t)
	log := testLogger(t)
	svc := NewMetricsService(
		db, log, DefaultMetricsConfig(),
		repos.NewTimeBlockRepo(db, log),
		repos.NewTaskRepo(db, log),
		repos.NewDailyReviewRepo(db, log),
		repos.NewBreakPolicyRepo(db, log),
	)
	return db, svc
}

// seedDoneBlock writes a task row plus a matching done block on the given day.
func seedDoneBlock(t *testing.T, db *gorm.DB, ownerID uuid.UUID, start time.Time, minutes int, taskDone bool) {
	t.Helper()

	task := &types.Task{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Title:    "Seeded task",
		Status:   types.TaskStatusTodo,
		Priority: types.PriorityMedium,
	}
	if taskDone {
		completedAt := start.Add(time.Duration(minutes) * time.Minute)
		task.Status = types.TaskStatusDone
		task.CompletedAt = &completedAt
	}
	require.NoError(t, db.Create(task).Error)

	require.NoError(t, db.Create(&types.TimeBlock{
		ID:      uuid.New(),
		OwnerID: ownerID,
		TaskID:  &task.ID,
		Title:   task.Title,
		Kind:    types.BlockKindTask,
		Start:   start,
		End:     start.Add(time.Duration(minutes) * time.Minute),
		Status:  types.BlockStatusDone,
		Source:  types.BlockSourceAuto,
	}).Error)
}

func seedReview(t *testing.T, db *gorm.DB, ownerID uuid.UUID, date time.Time, rate float64) {
	t.Helper()
	require.NoError(t, db.Create(&types.DailyReview{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Date:           date,
		CompletionRate: rate,
	}).Error)
}

func TestComputeDailyReviewRates(t *testing.T) {
	db, svc := newMetricsFixture(t)
	owner := uuid.New()

	// 8 planned tasks, 6 completed within the day, 25 minutes of focus each.
	for i := 0; i < 8; i++ {
		start := testDay.Add(time.Duration(9*60+i*35) * time.Minute)
		seedDoneBlock(t, db, owner, start, 25, i < 6)
	}
	require.NoError(t, db.Create(&types.TimeBlock{
		ID:      uuid.New(),
		OwnerID: owner,
		Title:   "Break",
		Kind:    types.BlockKindBreak,
		Start:   testDay.Add(14 * time.Hour),
		End:     testDay.Add(14*time.Hour + 5*time.Minute),
		Status:  types.BlockStatusDone,
		Source:  types.BlockSourceAuto,
	}).Error)

	review, err := svc.ComputeDailyReview(context.Background(), owner, testDay)
	require.NoError(t, err)

	assert.Equal(t, 8, review.TasksPlanned)
	assert.Equal(t, 6, review.TasksCompleted)
	assert.InDelta(t, 75.0, review.CompletionRate, 0.001)
	assert.Equal(t, 200, review.FocusTimeMinutes)
	assert.Equal(t, 5, review.BreakTimeMinutes)

	// 0.6*75 + 0.4*(100*200/480)
	assert.InDelta(t, 61.667, review.ProductivityScore, 0.01)
	assert.Equal(t, 1, review.CurrentStreak)
}

func TestComputeDailyReviewExcludesCanceledBreaks(t *testing.T) {
	db, svc := newMetricsFixture(t)
	owner := uuid.New()

	seedDoneBlock(t, db, owner, testDay.Add(9*time.Hour), 25, true)
	require.NoError(t, db.Create(&types.TimeBlock{
		ID:      uuid.New(),
		OwnerID: owner,
		Title:   "Break",
		Kind:    types.BlockKindBreak,
		Start:   testDay.Add(10 * time.Hour),
		End:     testDay.Add(10*time.Hour + 15*time.Minute),
		Status:  types.BlockStatusCanceled,
		Source:  types.BlockSourceAuto,
	}).Error)

	review, err := svc.ComputeDailyReview(context.Background(), owner, testDay)
	require.NoError(t, err)
	assert.Equal(t, 0, review.BreakTimeMinutes)
}

func TestComputeDailyReviewIsIdempotent(t *testing.T) {
	db, svc := newMetricsFixture(t)
	owner := uuid.New()
	seedDoneBlock(t, db, owner, testDay.Add(9*time.Hour), 25, true)

	first, err := svc.ComputeDailyReview(context.Background(), owner, testDay)
	require.NoError(t, err)
	second, err := svc.ComputeDailyReview(context.Background(), owner, testDay)
	require.NoError(t, err)

	assert.Equal(t, first.CompletionRate, second.CompletionRate)

	var count int64
	require.NoError(t, db.Model(&types.DailyReview{}).
		Where("owner_id = ?", owner).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStreakCountsConsecutiveQualifyingDays(t *testing.T) {
	db, svc := newMetricsFixture(t)
	owner := uuid.New()

	seedReview(t, db, owner, testDay.AddDate(0, 0, -2), 60)
	seedReview(t, db, owner, testDay.AddDate(0, 0, -1), 80)
	seedDoneBlock(t, db, owner, testDay.Add(9*time.Hour), 25, true)

	review, err := svc.ComputeDailyReview(context.Background(), owner, testDay)
	require.NoError(t, err)
	assert.Equal(t, 3, review.CurrentStreak)
}

func TestStreakResetsBelowThresholdAndRestarts(t *testing.T) {
	db, svc := newMetricsFixture(t)
	owner := uuid.New()

	seedReview(t, db, owner, testDay.AddDate(0, 0, -1), 100)

	// Planned but not completed: completion rate 0, streak resets.
	seedDoneBlock(t, db, owner, testDay.Add(9*time.Hour), 25, false)
	review, err := svc.ComputeDailyReview(context.Background(), owner, testDay)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, review.CompletionRate, 0.001)
	assert.Equal(t, 0, review.CurrentStreak)

	// The next qualifying day starts over at 1, not where it left off.
	nextDay := testDay.AddDate(0, 0, 1)
	seedDoneBlock(t, db, owner, nextDay.Add(9*time.Hour), 25, true)
	review, err = svc.ComputeDailyReview(context.Background(), owner, nextDay)
	require.NoError(t, err)
	assert.Equal(t, 1, review.CurrentStreak)
}
