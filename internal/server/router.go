package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/tamiti-backend/internal/handlers"
	"github.com/yungbote/tamiti-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware  *middleware.AuthMiddleware
	PlannerHandler  *handlers.PlannerHandler
	BlockHandler    *handlers.BlockHandler
	TaskHandler     *handlers.TaskHandler
	CalendarHandler *handlers.CalendarHandler
	ReviewHandler   *handlers.ReviewHandler
	InsightHandler  *handlers.InsightHandler
	WorkGoalHandler *handlers.WorkGoalHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Planner
	api.GET("/planner/preview", cfg.PlannerHandler.Preview)
	api.POST("/planner/commit", cfg.PlannerHandler.Commit)
	api.POST("/planner/replan", cfg.PlannerHandler.Replan)

	// Blocks
	api.GET("/blocks", cfg.BlockHandler.List)
	api.POST("/blocks", cfg.BlockHandler.Create)
	api.PATCH("/blocks/:id/status", cfg.BlockHandler.UpdateStatus)

	// Tasks
	api.GET("/tasks/:id", cfg.TaskHandler.Get)
	api.PATCH("/tasks/:id/status", cfg.TaskHandler.UpdateStatus)

	// Calendar
	api.GET("/calendar/events", cfg.CalendarHandler.List)
	api.POST("/calendar/events", cfg.CalendarHandler.Create)
	api.DELETE("/calendar/events/:id", cfg.CalendarHandler.Delete)

	// Reviews
	api.GET("/reviews", cfg.ReviewHandler.ListRange)
	api.GET("/reviews/daily", cfg.ReviewHandler.GetDaily)
	api.POST("/reviews/daily/recompute", cfg.ReviewHandler.Recompute)

	// Insights
	api.GET("/insights", cfg.InsightHandler.ListActive)
	api.POST("/insights/generate", cfg.InsightHandler.Generate)

	// Goals
	api.GET("/goals/:id", cfg.WorkGoalHandler.Get)
	api.POST("/goals/:id/recompute", cfg.WorkGoalHandler.Recompute)

	return router
}
