// compute_metrics recomputes daily reviews (and optionally insights) for a
// given date, either for every owner with task blocks that day or a single
// owner. Useful for backfills and for re-running a failed nightly job.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/tamiti-backend/internal/app"
	metricsjob "github.com/yungbote/tamiti-backend/internal/jobs/metrics"
)

func main() {
	dateFlag := flag.String("date", "", "date to compute (YYYY-MM-DD), defaults to yesterday")
	ownerFlag := flag.String("owner", "", "limit to a single owner id")
	insightsFlag := flag.Bool("insights", false, "also regenerate insights")
	flag.Parse()

	day := time.Now().AddDate(0, 0, -1)
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			fmt.Printf("Invalid -date %q: %v\n", *dateFlag, err)
			os.Exit(1)
		}
		day = parsed
	}

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx := context.Background()

	if *ownerFlag != "" {
		ownerID, err := uuid.Parse(*ownerFlag)
		if err != nil {
			fmt.Printf("Invalid -owner %q: %v\n", *ownerFlag, err)
			os.Exit(1)
		}
		review, err := a.Services.Metrics.ComputeDailyReview(ctx, ownerID, day)
		if err != nil {
			a.Log.Error("Daily review failed", "owner_id", ownerID, "error", err)
			os.Exit(1)
		}
		a.Log.Info("Daily review computed",
			"owner_id", ownerID,
			"date", day.Format("2006-01-02"),
			"completion_rate", review.CompletionRate,
			"productivity_score", review.ProductivityScore)

		if *insightsFlag {
			insights, err := a.Services.Insight.Generate(ctx, ownerID)
			if err != nil {
				a.Log.Error("Insight generation failed", "owner_id", ownerID, "error", err)
				os.Exit(1)
			}
			a.Log.Info("Insights regenerated", "owner_id", ownerID, "count", len(insights))
		}
		return
	}

	runner := metricsjob.NewRunner(a.Log, a.Services.Metrics, a.Services.Insight, a.Repos.TimeBlock, a.Repos.DailyReview)
	if err := runner.RunOnce(ctx, day); err != nil {
		a.Log.Error("Metrics run failed", "error", err)
		os.Exit(1)
	}
}
