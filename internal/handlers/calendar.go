package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/services"
)

type CalendarHandler struct {
	log         *logger.Logger
	calendarSvc services.CalendarService
}

func NewCalendarHandler(log *logger.Logger, calendarSvc services.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		log:         log.With("handler", "CalendarHandler"),
		calendarSvc: calendarSvc,
	}
}

// GET /api/calendar/events
func (h *CalendarHandler) List(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	events, err := h.calendarSvc.List(c.Request.Context(), ownerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}

// POST /api/calendar/events
func (h *CalendarHandler) Create(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var input services.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	event, err := h.calendarSvc.Create(c.Request.Context(), ownerID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, event)
}

// DELETE /api/calendar/events/:id
func (h *CalendarHandler) Delete(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid event id"))
		return
	}

	if err := h.calendarSvc.Delete(c.Request.Context(), ownerID, eventID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": eventID})
}
