package app

import (
	"github.com/yungbote/tamiti-backend/internal/handlers"
	"github.com/yungbote/tamiti-backend/internal/logger"
)

type Handlers struct {
	Planner  *handlers.PlannerHandler
	Block    *handlers.BlockHandler
	Task     *handlers.TaskHandler
	Calendar *handlers.CalendarHandler
	Review   *handlers.ReviewHandler
	Insight  *handlers.InsightHandler
	WorkGoal *handlers.WorkGoalHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Planner:  handlers.NewPlannerHandler(log, services.Schedule),
		Block:    handlers.NewBlockHandler(log, services.Block),
		Task:     handlers.NewTaskHandler(log, services.Task),
		Calendar: handlers.NewCalendarHandler(log, services.Calendar),
		Review:   handlers.NewReviewHandler(log, services.Metrics),
		Insight:  handlers.NewInsightHandler(log, services.Insight),
		WorkGoal: handlers.NewWorkGoalHandler(log, services.WorkGoal),
	}
}
