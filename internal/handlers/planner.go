package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/services"
)

type PlannerHandler struct {
	log         *logger.Logger
	scheduleSvc services.ScheduleService
}

func NewPlannerHandler(log *logger.Logger, scheduleSvc services.ScheduleService) *PlannerHandler {
	return &PlannerHandler{
		log:         log.With("handler", "PlannerHandler"),
		scheduleSvc: scheduleSvc,
	}
}

func plannerParams(c *gin.Context) (scope, date string) {
	scope = c.DefaultQuery("scope", services.ScopeDay)
	date = c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	return scope, date
}

// GET /api/planner/preview?scope=day|week&date=YYYY-MM-DD
func (h *PlannerHandler) Preview(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	scope, date := plannerParams(c)
	result, err := h.scheduleSvc.Preview(c.Request.Context(), ownerID, scope, date)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// POST /api/planner/commit?scope=day|week&date=YYYY-MM-DD
func (h *PlannerHandler) Commit(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	scope, date := plannerParams(c)
	result, err := h.scheduleSvc.Commit(c.Request.Context(), ownerID, scope, date)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// POST /api/planner/replan?scope=day|week&date=YYYY-MM-DD
func (h *PlannerHandler) Replan(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	scope, date := plannerParams(c)
	result, err := h.scheduleSvc.Replan(c.Request.Context(), ownerID, scope, date)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
