package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/tamiti-backend/internal/server"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:  middleware.Auth,
		PlannerHandler:  handlers.Planner,
		BlockHandler:    handlers.Block,
		TaskHandler:     handlers.Task,
		CalendarHandler: handlers.Calendar,
		ReviewHandler:   handlers.Review,
		InsightHandler:  handlers.Insight,
		WorkGoalHandler: handlers.WorkGoal,
	})
}
