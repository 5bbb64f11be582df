package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

const (
	insightWindowDays = 30

	// Per-type sample floors. Below these the type is skipped entirely
	// rather than emitted with misleading confidence.
	minPeakHourBlocks         = 10
	minDurationBlocks         = 5
	minBreakPatternReviews    = 5
	minWeeklyTrendReviews     = 7
	minCompletionPatternRows  = 6
	completionTrendThreshold  = 5.0
	healthyBreakRatioMin      = 0.1
	healthyBreakRatioMax      = 0.4
	peakHourCount             = 3
)

// InsightService mines the trailing window of blocks and reviews for
// productivity patterns. Regeneration deactivates the previous active row of
// each emitted type; history stays queryable.
type InsightService interface {
	Generate(ctx context.Context, ownerID uuid.UUID) ([]*types.Insight, error)
	ListActive(ctx context.Context, ownerID uuid.UUID) ([]*types.Insight, error)
}

type insightService struct {
	db          *gorm.DB
	log         *logger.Logger
	blockRepo   repos.TimeBlockRepo
	reviewRepo  repos.DailyReviewRepo
	insightRepo repos.InsightRepo
	now         func() time.Time
}

func NewInsightService(
	db *gorm.DB,
	log *logger.Logger,
	blockRepo repos.TimeBlockRepo,
	reviewRepo repos.DailyReviewRepo,
	insightRepo repos.InsightRepo,
) InsightService {
	return &insightService{
		db:          db,
		log:         log.With("service", "InsightService"),
		blockRepo:   blockRepo,
		reviewRepo:  reviewRepo,
		insightRepo: insightRepo,
		now:         time.Now,
	}
}

func (s *insightService) ListActive(ctx context.Context, ownerID uuid.UUID) ([]*types.Insight, error) {
	return s.insightRepo.GetActiveByOwner(ctx, nil, ownerID)
}

func (s *insightService) Generate(ctx context.Context, ownerID uuid.UUID) ([]*types.Insight, error) {
	now := s.now()
	since := now.AddDate(0, 0, -insightWindowDays)

	taskBlocks, err := s.blockRepo.GetByOwnerKindInRange(ctx, nil, ownerID, types.BlockKindTask, since, now)
	if err != nil {
		return nil, err
	}
	var doneBlocks []*types.TimeBlock
	for _, b := range taskBlocks {
		if b.Status == types.BlockStatusDone {
			doneBlocks = append(doneBlocks, b)
		}
	}

	reviews, err := s.reviewRepo.GetByOwnerInRange(ctx, nil, ownerID, since, now)
	if err != nil {
		return nil, err
	}

	candidates := []*types.Insight{
		s.peakHours(doneBlocks),
		s.taskDuration(doneBlocks),
		s.breakPattern(reviews),
		s.weeklyTrend(reviews),
		s.completionPattern(reviews),
	}

	var generated []*types.Insight
	for _, insight := range candidates {
		if insight == nil {
			continue
		}
		insight.ID = uuid.New()
		insight.OwnerID = ownerID
		insight.ValidFrom = now
		insight.IsActive = true

		if err := s.insightRepo.DeactivateByOwnerAndType(ctx, nil, ownerID, insight.InsightType, now); err != nil {
			return nil, err
		}
		created, err := s.insightRepo.Create(ctx, nil, insight)
		if err != nil {
			return nil, err
		}
		generated = append(generated, created)
	}

	s.log.Info("Generated insights", "owner_id", ownerID, "count", len(generated))
	return generated, nil
}

func (s *insightService) peakHours(doneBlocks []*types.TimeBlock) *types.Insight {
	if len(doneBlocks) < minPeakHourBlocks {
		return nil
	}

	minutesByHour := map[int]int{}
	for _, b := range doneBlocks {
		minutesByHour[b.Start.Hour()] += b.DurationMinutes()
	}

	hours := make([]int, 0, len(minutesByHour))
	for h := range minutesByHour {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if minutesByHour[hours[i]] != minutesByHour[hours[j]] {
			return minutesByHour[hours[i]] > minutesByHour[hours[j]]
		}
		return hours[i] < hours[j]
	})
	if len(hours) > peakHourCount {
		hours = hours[:peakHourCount]
	}

	return buildInsight(types.InsightPeakHours, map[string]interface{}{
		"hours": hours,
	}, clampConfidence(2*len(doneBlocks)), len(doneBlocks))
}

func (s *insightService) taskDuration(doneBlocks []*types.TimeBlock) *types.Insight {
	if len(doneBlocks) < minDurationBlocks {
		return nil
	}

	durations := make([]int, 0, len(doneBlocks))
	for _, b := range doneBlocks {
		durations = append(durations, b.DurationMinutes())
	}
	sort.Ints(durations)

	var median float64
	mid := len(durations) / 2
	if len(durations)%2 == 1 {
		median = float64(durations[mid])
	} else {
		median = float64(durations[mid-1]+durations[mid]) / 2
	}

	return buildInsight(types.InsightTaskDuration, map[string]interface{}{
		"median_minutes": median,
	}, clampConfidence(5*len(doneBlocks)), len(doneBlocks))
}

func (s *insightService) breakPattern(reviews []*types.DailyReview) *types.Insight {
	var withBreaks []*types.DailyReview
	for _, r := range reviews {
		if r.FocusTimeMinutes > 0 && r.BreakTimeMinutes > 0 {
			withBreaks = append(withBreaks, r)
		}
	}
	if len(withBreaks) < minBreakPatternReviews {
		return nil
	}

	totalFocus, totalBreak := 0, 0
	for _, r := range withBreaks {
		totalFocus += r.FocusTimeMinutes
		totalBreak += r.BreakTimeMinutes
	}
	ratio := float64(totalBreak) / float64(totalFocus)

	return buildInsight(types.InsightBreakPattern, map[string]interface{}{
		"break_ratio":         ratio,
		"healthy_min":         healthyBreakRatioMin,
		"healthy_max":         healthyBreakRatioMax,
		"within_healthy_band": ratio >= healthyBreakRatioMin && ratio <= healthyBreakRatioMax,
	}, clampConfidence(3*len(withBreaks)), len(withBreaks))
}

func (s *insightService) weeklyTrend(reviews []*types.DailyReview) *types.Insight {
	if len(reviews) < minWeeklyTrendReviews {
		return nil
	}

	sums := map[int]float64{}
	counts := map[int]int{}
	for _, r := range reviews {
		weekday := (int(r.Date.Weekday()) + 6) % 7
		sums[weekday] += r.ProductivityScore
		counts[weekday]++
	}

	averages := map[string]float64{}
	for weekday, sum := range sums {
		averages[fmt.Sprintf("%d", weekday)] = sum / float64(counts[weekday])
	}

	return buildInsight(types.InsightWeeklyTrend, map[string]interface{}{
		"weekday_averages": averages,
	}, clampConfidence(len(reviews)), len(reviews))
}

// completionPattern compares mean completion rate of the most recent half of
// the window against the prior half.
func (s *insightService) completionPattern(reviews []*types.DailyReview) *types.Insight {
	if len(reviews) < minCompletionPatternRows {
		return nil
	}

	// reviews arrive date-ascending from the repo.
	mid := len(reviews) / 2
	prior := reviews[:mid]
	recent := reviews[mid:]

	mean := func(rows []*types.DailyReview) float64 {
		sum := 0.0
		for _, r := range rows {
			sum += r.CompletionRate
		}
		return sum / float64(len(rows))
	}

	priorAvg := mean(prior)
	recentAvg := mean(recent)

	trend := "stable"
	switch {
	case recentAvg-priorAvg > completionTrendThreshold:
		trend = "improving"
	case priorAvg-recentAvg > completionTrendThreshold:
		trend = "declining"
	}

	return buildInsight(types.InsightCompletionPattern, map[string]interface{}{
		"recent_avg": recentAvg,
		"prior_avg":  priorAvg,
		"trend":      trend,
	}, clampConfidence(2*len(reviews)), len(reviews))
}

func buildInsight(insightType string, payload map[string]interface{}, confidence float64, sampleSize int) *types.Insight {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return &types.Insight{
		InsightType:     insightType,
		Data:            datatypes.JSON(raw),
		ConfidenceScore: confidence,
		SampleSize:      sampleSize,
	}
}

func clampConfidence(v int) float64 {
	if v > 100 {
		return 100
	}
	return float64(v)
}
