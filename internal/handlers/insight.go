package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/services"
)

type InsightHandler struct {
	log        *logger.Logger
	insightSvc services.InsightService
}

func NewInsightHandler(log *logger.Logger, insightSvc services.InsightService) *InsightHandler {
	return &InsightHandler{
		log:        log.With("handler", "InsightHandler"),
		insightSvc: insightSvc,
	}
}

// GET /api/insights
func (h *InsightHandler) ListActive(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	insights, err := h.insightSvc.ListActive(c.Request.Context(), ownerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"insights": insights})
}

// POST /api/insights/generate
func (h *InsightHandler) Generate(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	insights, err := h.insightSvc.Generate(c.Request.Context(), ownerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"insights": insights})
}
