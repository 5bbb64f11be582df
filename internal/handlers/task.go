package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/services"
)

type TaskHandler struct {
	log     *logger.Logger
	taskSvc services.TaskService
}

func NewTaskHandler(log *logger.Logger, taskSvc services.TaskService) *TaskHandler {
	return &TaskHandler{
		log:     log.With("handler", "TaskHandler"),
		taskSvc: taskSvc,
	}
}

// GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid task id"))
		return
	}

	task, err := h.taskSvc.Get(c.Request.Context(), ownerID, taskID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, task)
}

// PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid task id"))
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	task, err := h.taskSvc.UpdateStatus(c.Request.Context(), ownerID, taskID, body.Status)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, task)
}
