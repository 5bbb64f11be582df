package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/repos"
)

type Repos struct {
	Task                 repos.TaskRepo
	TimeBlock            repos.TimeBlockRepo
	AvailabilityTemplate repos.AvailabilityTemplateRepo
	CalendarEvent        repos.CalendarEventRepo
	BreakPolicy          repos.BreakPolicyRepo
	DailyReview          repos.DailyReviewRepo
	Insight              repos.InsightRepo
	WorkGoal             repos.WorkGoalRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Task:                 repos.NewTaskRepo(db, log),
		TimeBlock:            repos.NewTimeBlockRepo(db, log),
		AvailabilityTemplate: repos.NewAvailabilityTemplateRepo(db, log),
		CalendarEvent:        repos.NewCalendarEventRepo(db, log),
		BreakPolicy:          repos.NewBreakPolicyRepo(db, log),
		DailyReview:          repos.NewDailyReviewRepo(db, log),
		Insight:              repos.NewInsightRepo(db, log),
		WorkGoal:             repos.NewWorkGoalRepo(db, log),
	}
}
