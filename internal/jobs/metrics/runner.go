package metrics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/repos"
	"github.com/yungbote/tamiti-backend/internal/services"
)

// maxConcurrentOwners bounds the nightly fan-out so one big tenant day does
// not exhaust database connections.
const maxConcurrentOwners = 8

// minReviewsForInsights matches the largest per-type sample floor; owners
// below it would generate nothing anyway.
const minReviewsForInsights = 7

// Runner recomputes yesterday's daily reviews for every owner that had task
// blocks scheduled, then regenerates insights for owners with enough history.
type Runner struct {
	log        *logger.Logger
	cron       *cron.Cron
	metricsSvc services.MetricsService
	insightSvc services.InsightService
	blockRepo  repos.TimeBlockRepo
	reviewRepo repos.DailyReviewRepo
	now        func() time.Time
}

func NewRunner(
	log *logger.Logger,
	metricsSvc services.MetricsService,
	insightSvc services.InsightService,
	blockRepo repos.TimeBlockRepo,
	reviewRepo repos.DailyReviewRepo,
) *Runner {
	return &Runner{
		log:        log.With("job", "MetricsRunner"),
		cron:       cron.New(),
		metricsSvc: metricsSvc,
		insightSvc: insightSvc,
		blockRepo:  blockRepo,
		reviewRepo: reviewRepo,
		now:        time.Now,
	}
}

// Start schedules the nightly run. The cron stops when ctx is canceled.
func (r *Runner) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc("@daily", func() {
		if err := r.RunOnce(ctx, r.yesterday()); err != nil {
			r.log.Error("Nightly metrics run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	r.cron.Start()

	go func() {
		<-ctx.Done()
		r.cron.Stop()
	}()
	return nil
}

func (r *Runner) yesterday() time.Time {
	now := r.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -1)
}

// RunOnce processes a single day for all owners with task blocks on it.
func (r *Runner) RunOnce(ctx context.Context, day time.Time) error {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	owners, err := r.blockRepo.DistinctOwnersWithTaskBlocksOn(ctx, nil, dayStart, dayEnd)
	if err != nil {
		return err
	}
	r.log.Info("Starting metrics run", "date", dayStart.Format("2006-01-02"), "owners", len(owners))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOwners)
	for _, ownerID := range owners {
		ownerID := ownerID
		g.Go(func() error {
			return r.processOwner(gctx, ownerID, dayStart)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.log.Info("Metrics run complete", "date", dayStart.Format("2006-01-02"), "owners", len(owners))
	return nil
}

func (r *Runner) processOwner(ctx context.Context, ownerID uuid.UUID, day time.Time) error {
	if _, err := r.metricsSvc.ComputeDailyReview(ctx, ownerID, day); err != nil {
		r.log.Error("Daily review failed", "owner_id", ownerID, "error", err)
		return err
	}

	count, err := r.reviewRepo.CountByOwner(ctx, nil, ownerID)
	if err != nil {
		return err
	}
	if count < minReviewsForInsights {
		return nil
	}
	if _, err := r.insightSvc.Generate(ctx, ownerID); err != nil {
		r.log.Error("Insight generation failed", "owner_id", ownerID, "error", err)
		return err
	}
	return nil
}
