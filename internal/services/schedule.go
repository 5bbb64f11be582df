package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/clients/redis"
	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/planner"
	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/types"
)

const (
	ScopeDay  = "day"
	ScopeWeek = "week"
)

// RejectReasonCapacityConflict marks a proposed block that collides with an
// existing committed/in_progress/done block at commit time.
const RejectReasonCapacityConflict = "capacity_conflict"

type RejectedBlock struct {
	Block  planner.PlannedBlock `json:"block"`
	Reason string               `json:"reason"`
}

type CommitResult struct {
	Persisted []*types.TimeBlock `json:"persisted"`
	Rejected  []RejectedBlock    `json:"rejected"`
}

type ReplanResult struct {
	planner.Result
	CanceledBlocks int `json:"canceled_blocks"`
}

// ScheduleService orchestrates the planning pipeline: availability resolution
// and task selection feed the packer; preview returns the result, commit
// persists it, replan invalidates stale blocks first.
type ScheduleService interface {
	Preview(ctx context.Context, ownerID uuid.UUID, scope, date string) (*planner.Result, error)
	Commit(ctx context.Context, ownerID uuid.UUID, scope, date string) (*CommitResult, error)
	Replan(ctx context.Context, ownerID uuid.UUID, scope, date string) (*ReplanResult, error)
}

type scheduleService struct {
	db              *gorm.DB
	log             *logger.Logger
	cache           redis.PreviewCache
	taskRepo        repos.TaskRepo
	blockRepo       repos.TimeBlockRepo
	templateRepo    repos.AvailabilityTemplateRepo
	eventRepo       repos.CalendarEventRepo
	policyRepo      repos.BreakPolicyRepo
	locks           *ownerLocks
	defaultEstimate int
	minChunk        int
	now             func() time.Time
}

func NewScheduleService(
	db *gorm.DB,
	log *logger.Logger,
	cache redis.PreviewCache,
	taskRepo repos.TaskRepo,
	blockRepo repos.TimeBlockRepo,
	templateRepo repos.AvailabilityTemplateRepo,
	eventRepo repos.CalendarEventRepo,
	policyRepo repos.BreakPolicyRepo,
	defaultEstimate int,
	minChunk int,
) ScheduleService {
	if defaultEstimate <= 0 {
		defaultEstimate = planner.DefaultEstimateMinutes
	}
	if minChunk <= 0 {
		minChunk = planner.MinChunkMinutes
	}
	return &scheduleService{
		db:              db,
		log:             log.With("service", "ScheduleService"),
		cache:           cache,
		taskRepo:        taskRepo,
		blockRepo:       blockRepo,
		templateRepo:    templateRepo,
		eventRepo:       eventRepo,
		policyRepo:      policyRepo,
		locks:           newOwnerLocks(),
		defaultEstimate: defaultEstimate,
		minChunk:        minChunk,
		now:             time.Now,
	}
}

// resolveRange validates scope/date and returns the scheduling range
// [from, to). Week scope snaps to the Monday of the requested date's week.
func resolveRange(scope, date string) (time.Time, time.Time, error) {
	if scope != ScopeDay && scope != ScopeWeek {
		return time.Time{}, time.Time{}, ErrInvalidScope
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if scope == ScopeWeek {
		monday := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
		return monday, monday.AddDate(0, 0, 7), nil
	}
	return day, day.AddDate(0, 0, 1), nil
}

// compute runs the full pipeline without side effects. notBefore, when
// non-zero, clips windows so replanning never re-fills time that already
// passed.
func (s *scheduleService) compute(ctx context.Context, ownerID uuid.UUID, from, to time.Time, notBefore time.Time) (*planner.Result, error) {
	templates, err := s.templateRepo.GetByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.GetBusyByOwnerInRange(ctx, nil, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.GetCandidatesByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, err
	}
	policyRow, err := s.policyRepo.GetActiveByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, err
	}

	policy := planner.DefaultPolicy()
	if policyRow != nil {
		policy = planner.Policy{
			Focus:         policyRow.FocusMinutes,
			ShortBreak:    policyRow.ShortBreakMinutes,
			LongBreak:     policyRow.LongBreakMinutes,
			LongEvery:     policyRow.LongEvery,
			MaxDailyFocus: policyRow.MaxDailyFocusMinutes,
		}
	}

	windows := planner.ResolveWindows(from, to, templates, events)
	if !notBefore.IsZero() {
		windows = clipWindows(windows, notBefore)
	}
	units := planner.SelectUnits(tasks, s.now(), from, to, s.defaultEstimate)
	result := planner.Pack(windows, units, policy, s.minChunk)
	return &result, nil
}

func clipWindows(windows []planner.Window, notBefore time.Time) []planner.Window {
	var clipped []planner.Window
	for _, w := range windows {
		if !w.End.After(notBefore) {
			continue
		}
		if w.Start.Before(notBefore) {
			w.Start = notBefore
		}
		clipped = append(clipped, w)
	}
	return clipped
}

func (s *scheduleService) Preview(ctx context.Context, ownerID uuid.UUID, scope, date string) (*planner.Result, error) {
	from, to, err := resolveRange(scope, date)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(ctx, ownerID, scope, date); ok {
		s.log.Debug("Preview served from cache", "owner_id", ownerID, "scope", scope, "date", date)
		return cached, nil
	}

	result, err := s.compute(ctx, ownerID, from, to, time.Time{})
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, ownerID, scope, date, result)
	return result, nil
}

// Commit recomputes the plan and persists each proposed block as committed.
// Blocks colliding with existing committed/in_progress/done blocks are
// rejected individually; the rest persist. The response always carries both
// sides.
func (s *scheduleService) Commit(ctx context.Context, ownerID uuid.UUID, scope, date string) (*CommitResult, error) {
	from, to, err := resolveRange(scope, date)
	if err != nil {
		return nil, err
	}

	lock := s.locks.forOwner(ownerID)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.compute(ctx, ownerID, from, to, time.Time{})
	if err != nil {
		return nil, err
	}

	commit := &CommitResult{
		Persisted: []*types.TimeBlock{},
		Rejected:  []RejectedBlock{},
	}
	for _, proposed := range result.Blocks {
		overlapping, err := s.blockRepo.FindOverlapping(ctx, nil, ownerID, proposed.Start, proposed.End, types.OccupyingBlockStatuses)
		if err != nil {
			return nil, err
		}
		if len(overlapping) > 0 {
			commit.Rejected = append(commit.Rejected, RejectedBlock{Block: proposed, Reason: RejectReasonCapacityConflict})
			continue
		}

		block := &types.TimeBlock{
			ID:      uuid.New(),
			OwnerID: ownerID,
			TaskID:  proposed.TaskID,
			Title:   proposed.Title,
			Kind:    types.BlockKindTask,
			Start:   proposed.Start,
			End:     proposed.End,
			Status:  types.BlockStatusCommitted,
			Source:  types.BlockSourceAuto,
		}
		if proposed.IsBreak {
			block.Kind = types.BlockKindBreak
		}
		created, err := s.blockRepo.Create(ctx, nil, block)
		if err != nil {
			return nil, err
		}
		commit.Persisted = append(commit.Persisted, created)
	}

	s.log.Info("Committed schedule",
		"owner_id", ownerID, "scope", scope, "date", date,
		"persisted", len(commit.Persisted), "rejected", len(commit.Rejected))
	return commit, nil
}

// Replan cancels stale blocks (planned/committed with an end already in the
// past; in_progress and done are never touched) and recomputes the plan over
// the remaining forward-looking window.
func (s *scheduleService) Replan(ctx context.Context, ownerID uuid.UUID, scope, date string) (*ReplanResult, error) {
	from, to, err := resolveRange(scope, date)
	if err != nil {
		return nil, err
	}

	lock := s.locks.forOwner(ownerID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()
	stale, err := s.blockRepo.GetStale(ctx, nil, ownerID, now)
	if err != nil {
		return nil, err
	}
	staleIDs := make([]uuid.UUID, 0, len(stale))
	for _, b := range stale {
		staleIDs = append(staleIDs, b.ID)
	}
	if err := s.blockRepo.CancelByIDs(ctx, nil, staleIDs); err != nil {
		return nil, err
	}

	result, err := s.compute(ctx, ownerID, from, to, now)
	if err != nil {
		return nil, err
	}

	s.log.Info("Replanned schedule",
		"owner_id", ownerID, "scope", scope, "date", date, "canceled", len(staleIDs))
	return &ReplanResult{Result: *result, CanceledBlocks: len(staleIDs)}, nil
}
