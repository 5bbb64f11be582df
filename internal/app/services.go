package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/services"
)

type Services struct {
	Schedule services.ScheduleService
	Block    services.BlockService
	Task     services.TaskService
	Calendar services.CalendarService
	Metrics  services.MetricsService
	Insight  services.InsightService
	WorkGoal services.WorkGoalService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	scheduleService := services.NewScheduleService(
		db, log,
		clients.PreviewCache,
		repos.Task,
		repos.TimeBlock,
		repos.AvailabilityTemplate,
		repos.CalendarEvent,
		repos.BreakPolicy,
		cfg.DefaultEstimateMinutes,
		cfg.MinChunkMinutes,
	)
	blockService := services.NewBlockService(db, log, repos.TimeBlock)
	workGoalService := services.NewWorkGoalService(db, log, repos.WorkGoal)
	taskService := services.NewTaskService(db, log, clients.PreviewCache, repos.Task, workGoalService)
	calendarService := services.NewCalendarService(db, log, clients.PreviewCache, repos.CalendarEvent)
	metricsService := services.NewMetricsService(
		db, log,
		services.MetricsConfig{
			CompletionWeight: cfg.CompletionWeight,
			FocusWeight:      cfg.FocusWeight,
			StreakThreshold:  cfg.StreakThreshold,
			DailyFocusTarget: cfg.DailyFocusTarget,
		},
		repos.TimeBlock,
		repos.Task,
		repos.DailyReview,
		repos.BreakPolicy,
	)
	insightService := services.NewInsightService(db, log, repos.TimeBlock, repos.DailyReview, repos.Insight)

	return Services{
		Schedule: scheduleService,
		Block:    blockService,
		Task:     taskService,
		Calendar: calendarService,
		Metrics:  metricsService,
		Insight:  insightService,
		WorkGoal: workGoalService,
	}
}
