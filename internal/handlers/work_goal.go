package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/services"
)

type WorkGoalHandler struct {
	log     *logger.Logger
	goalSvc services.WorkGoalService
}

func NewWorkGoalHandler(log *logger.Logger, goalSvc services.WorkGoalService) *WorkGoalHandler {
	return &WorkGoalHandler{
		log:     log.With("handler", "WorkGoalHandler"),
		goalSvc: goalSvc,
	}
}

func goalID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid goal id"))
		return uuid.Nil, false
	}
	return id, true
}

// GET /api/goals/:id
func (h *WorkGoalHandler) Get(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := goalID(c)
	if !ok {
		return
	}

	goal, err := h.goalSvc.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, goal)
}

// POST /api/goals/:id/recompute
func (h *WorkGoalHandler) Recompute(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := goalID(c)
	if !ok {
		return
	}

	// Ownership check happens via Get before recomputing.
	if _, err := h.goalSvc.Get(c.Request.Context(), ownerID, id); err != nil {
		RespondServiceError(c, err)
		return
	}
	goal, err := h.goalSvc.RecomputeProgress(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, goal)
}
