package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

func newInsightFixture(t *testing.T) (*gorm.DB, *insightService) {
	t.Helper()

	db := openTestDB(t)
	log := testLogger(t)
	svc := NewInsightService(
		db, log,
		repos.NewTimeBlockRepo(db, log),
		repos.NewDailyReviewRepo(db, log),
		repos.NewInsightRepo(db, log),
	).(*insightService)
	svc.now = func() time.Time { return testDay.Add(20 * time.Hour) }
	return db, svc
}

func seedInsightBlock(t *testing.T, db *gorm.DB, ownerID uuid.UUID, start time.Time, minutes int) {
	t.Helper()
	require.NoError(t, db.Create(&types.TimeBlock{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Title:   "Focus work",
		Kind:    types.BlockKindTask,
		Start:   start,
		End:     start.Add(time.Duration(minutes) * time.Minute),
		Status:  types.BlockStatusDone,
		Source:  types.BlockSourceAuto,
	}).Error)
}

func insightByType(insights []*types.Insight, insightType string) *types.Insight {
	for _, in := range insights {
		if in.InsightType == insightType {
			return in
		}
	}
	return nil
}

func TestGenerateSkipsTypesBelowSampleFloor(t *testing.T) {
	db, svc := newInsightFixture(t)
	owner := uuid.New()

	for i := 0; i < 3; i++ {
		seedInsightBlock(t, db, owner, testDay.AddDate(0, 0, -1-i).Add(9*time.Hour), 25)
	}
	seedReview(t, db, owner, testDay.AddDate(0, 0, -1), 80)

	insights, err := svc.Generate(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestGeneratePeakHoursAndDuration(t *testing.T) {
	db, svc := newInsightFixture(t)
	owner := uuid.New()

	// 150 done minutes at 09:00, 200 at 14:00, 50 at 16:00 over prior days.
	for i := 0; i < 6; i++ {
		seedInsightBlock(t, db, owner, testDay.AddDate(0, 0, -1-i).Add(9*time.Hour), 25)
	}
	for i := 0; i < 4; i++ {
		seedInsightBlock(t, db, owner, testDay.AddDate(0, 0, -1-i).Add(14*time.Hour), 50)
	}
	for i := 0; i < 2; i++ {
		seedInsightBlock(t, db, owner, testDay.AddDate(0, 0, -1-i).Add(16*time.Hour), 25)
	}

	insights, err := svc.Generate(context.Background(), owner)
	require.NoError(t, err)

	peak := insightByType(insights, types.InsightPeakHours)
	require.NotNil(t, peak)
	var peakData struct {
		Hours []int `json:"hours"`
	}
	require.NoError(t, json.Unmarshal(peak.Data, &peakData))
	assert.Equal(t, []int{14, 9, 16}, peakData.Hours)
	assert.Equal(t, 12, peak.SampleSize)
	assert.True(t, peak.IsActive)

	duration := insightByType(insights, types.InsightTaskDuration)
	require.NotNil(t, duration)
	var durationData struct {
		MedianMinutes float64 `json:"median_minutes"`
	}
	require.NoError(t, json.Unmarshal(duration.Data, &durationData))
	assert.InDelta(t, 25.0, durationData.MedianMinutes, 0.001)
}

func TestGenerateReviewPatterns(t *testing.T) {
	db, svc := newInsightFixture(t)
	owner := uuid.New()

	rates := []float64{50, 50, 50, 70, 70, 70}
	for i, rate := range rates {
		date := testDay.AddDate(0, 0, -len(rates)+i)
		require.NoError(t, db.Create(&types.DailyReview{
			ID:               uuid.New(),
			OwnerID:          owner,
			Date:             date,
			CompletionRate:   rate,
			FocusTimeMinutes: 100,
			BreakTimeMinutes: 20,
		}).Error)
	}

	insights, err := svc.Generate(context.Background(), owner)
	require.NoError(t, err)

	breakPattern := insightByType(insights, types.InsightBreakPattern)
	require.NotNil(t, breakPattern)
	var breakData struct {
		BreakRatio        float64 `json:"break_ratio"`
		WithinHealthyBand bool    `json:"within_healthy_band"`
	}
	require.NoError(t, json.Unmarshal(breakPattern.Data, &breakData))
	assert.InDelta(t, 0.2, breakData.BreakRatio, 0.001)
	assert.True(t, breakData.WithinHealthyBand)

	completion := insightByType(insights, types.InsightCompletionPattern)
	require.NotNil(t, completion)
	var completionData struct {
		Trend string `json:"trend"`
	}
	require.NoError(t, json.Unmarshal(completion.Data, &completionData))
	assert.Equal(t, "improving", completionData.Trend)

	// Six reviews sit below the weekly trend floor of seven.
	assert.Nil(t, insightByType(insights, types.InsightWeeklyTrend))
}

func TestGenerateDeactivatesPriorRows(t *testing.T) {
	db, svc := newInsightFixture(t)
	owner := uuid.New()

	for i := 0; i < 6; i++ {
		require.NoError(t, db.Create(&types.DailyReview{
			ID:               uuid.New(),
			OwnerID:          owner,
			Date:             testDay.AddDate(0, 0, -6+i),
			CompletionRate:   60,
			FocusTimeMinutes: 100,
			BreakTimeMinutes: 20,
		}).Error)
	}

	first, err := svc.Generate(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.Generate(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, second, 2)

	var active, inactive int64
	require.NoError(t, db.Model(&types.Insight{}).
		Where("owner_id = ? AND is_active = ?", owner, true).Count(&active).Error)
	require.NoError(t, db.Model(&types.Insight{}).
		Where("owner_id = ? AND is_active = ?", owner, false).Count(&inactive).Error)
	assert.Equal(t, int64(2), active)
	assert.Equal(t, int64(2), inactive)

	var retired []*types.Insight
	require.NoError(t, db.
		Where("owner_id = ? AND is_active = ?", owner, false).
		Find(&retired).Error)
	for _, in := range retired {
		assert.NotNil(t, in.ValidUntil)
	}
}
