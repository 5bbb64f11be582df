package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/planner"
	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

// MetricsConfig holds the productivity scoring policy. The weights and
// threshold are conventions, not laws, so they are injected rather than
// hard-coded.
type MetricsConfig struct {
	CompletionWeight float64
	FocusWeight      float64
	StreakThreshold  float64
	// DailyFocusTarget in minutes; 0 means "use the owner's break policy
	// daily cap".
	DailyFocusTarget int
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		CompletionWeight: 0.6,
		FocusWeight:      0.4,
		StreakThreshold:  50,
	}
}

// MetricsService derives the per-day DailyReview from persisted blocks and
// task completion state. Recomputation upserts, so reruns are idempotent.
type MetricsService interface {
	ComputeDailyReview(ctx context.Context, ownerID uuid.UUID, date time.Time) (*types.DailyReview, error)
	GetDailyReview(ctx context.Context, ownerID uuid.UUID, date time.Time) (*types.DailyReview, error)
	ListDailyReviews(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*types.DailyReview, error)
}

type metricsService struct {
	db         *gorm.DB
	log        *logger.Logger
	cfg        MetricsConfig
	blockRepo  repos.TimeBlockRepo
	taskRepo   repos.TaskRepo
	reviewRepo repos.DailyReviewRepo
	policyRepo repos.BreakPolicyRepo
}

func NewMetricsService(
	db *gorm.DB,
	log *logger.Logger,
	cfg MetricsConfig,
	blockRepo repos.TimeBlockRepo,
	taskRepo repos.TaskRepo,
	reviewRepo repos.DailyReviewRepo,
	policyRepo repos.BreakPolicyRepo,
) MetricsService {
	if cfg.CompletionWeight == 0 && cfg.FocusWeight == 0 {
		cfg = DefaultMetricsConfig()
	}
	return &metricsService{
		db:         db,
		log:        log.With("service", "MetricsService"),
		cfg:        cfg,
		blockRepo:  blockRepo,
		taskRepo:   taskRepo,
		reviewRepo: reviewRepo,
		policyRepo: policyRepo,
	}
}

func (s *metricsService) GetDailyReview(ctx context.Context, ownerID uuid.UUID, date time.Time) (*types.DailyReview, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	review, err := s.reviewRepo.GetByOwnerAndDate(ctx, nil, ownerID, dayStart)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (s *metricsService) ListDailyReviews(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*types.DailyReview, error) {
	return s.reviewRepo.GetByOwnerInRange(ctx, nil, ownerID, from, to)
}

func (s *metricsService) ComputeDailyReview(ctx context.Context, ownerID uuid.UUID, date time.Time) (*types.DailyReview, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	blocks, err := s.blockRepo.GetByOwnerInRange(ctx, nil, ownerID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	plannedTaskIDs := map[uuid.UUID]struct{}{}
	focusMinutes := 0
	breakMinutes := 0
	for _, b := range blocks {
		switch b.Kind {
		case types.BlockKindTask:
			if b.TaskID != nil {
				plannedTaskIDs[*b.TaskID] = struct{}{}
			}
			if isOccupying(b.Status) {
				focusMinutes += b.DurationMinutes()
			}
		case types.BlockKindBreak:
			if b.Status != types.BlockStatusCanceled && b.Status != types.BlockStatusSkipped {
				breakMinutes += b.DurationMinutes()
			}
		}
	}

	taskIDs := make([]uuid.UUID, 0, len(plannedTaskIDs))
	for id := range plannedTaskIDs {
		taskIDs = append(taskIDs, id)
	}
	tasks, err := s.taskRepo.GetByIDs(ctx, nil, taskIDs)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, t := range tasks {
		if t.Status != types.TaskStatusDone || t.CompletedAt == nil {
			continue
		}
		if !t.CompletedAt.Before(dayStart) && t.CompletedAt.Before(dayEnd) {
			completed++
		}
	}

	planned := len(plannedTaskIDs)
	completionRate := 0.0
	if planned > 0 {
		completionRate = 100 * float64(completed) / float64(planned)
	}

	target := s.cfg.DailyFocusTarget
	if target <= 0 {
		policyRow, err := s.policyRepo.GetActiveByOwner(ctx, nil, ownerID)
		if err != nil {
			return nil, err
		}
		if policyRow != nil {
			target = policyRow.MaxDailyFocusMinutes
		} else {
			target = planner.DefaultPolicy().MaxDailyFocus
		}
	}

	focusScore := 100 * float64(focusMinutes) / float64(target)
	if focusScore > 100 {
		focusScore = 100
	}
	score := s.cfg.CompletionWeight*completionRate + s.cfg.FocusWeight*focusScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	streak, err := s.currentStreak(ctx, ownerID, dayStart, completionRate)
	if err != nil {
		return nil, err
	}

	review := &types.DailyReview{
		ID:                uuid.New(),
		OwnerID:           ownerID,
		Date:              dayStart,
		TasksPlanned:      planned,
		TasksCompleted:    completed,
		CompletionRate:    completionRate,
		FocusTimeMinutes:  focusMinutes,
		BreakTimeMinutes:  breakMinutes,
		ProductivityScore: score,
		CurrentStreak:     streak,
	}
	return s.reviewRepo.Upsert(ctx, nil, review)
}

// currentStreak counts consecutive qualifying days ending at dayStart. The
// scan stops at the first day below threshold or with no stored review.
func (s *metricsService) currentStreak(ctx context.Context, ownerID uuid.UUID, dayStart time.Time, todayRate float64) (int, error) {
	if todayRate < s.cfg.StreakThreshold {
		return 0, nil
	}
	streak := 1
	for day := dayStart.AddDate(0, 0, -1); ; day = day.AddDate(0, 0, -1) {
		review, err := s.reviewRepo.GetByOwnerAndDate(ctx, nil, ownerID, day)
		if err != nil {
			return 0, err
		}
		if review == nil || review.CompletionRate < s.cfg.StreakThreshold {
			return streak, nil
		}
		streak++
	}
}
