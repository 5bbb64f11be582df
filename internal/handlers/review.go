package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/services"
)

type ReviewHandler struct {
	log        *logger.Logger
	metricsSvc services.MetricsService
}

func NewReviewHandler(log *logger.Logger, metricsSvc services.MetricsService) *ReviewHandler {
	return &ReviewHandler{
		log:        log.With("handler", "ReviewHandler"),
		metricsSvc: metricsSvc,
	}
}

func reviewDate(c *gin.Context) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", c.DefaultQuery("date", time.Now().Format("2006-01-02")))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", services.ErrInvalidDate)
		return time.Time{}, false
	}
	return date, true
}

// GET /api/reviews/daily?date=YYYY-MM-DD
func (h *ReviewHandler) GetDaily(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	date, ok := reviewDate(c)
	if !ok {
		return
	}

	review, err := h.metricsSvc.GetDailyReview(c.Request.Context(), ownerID, date)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, review)
}

// GET /api/reviews?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReviewHandler) ListRange(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	to, ok := reviewDate(c)
	if !ok {
		return
	}
	from := to.AddDate(0, 0, -30)
	if raw := c.Query("from"); raw != "" {
		var err error
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", services.ErrInvalidDate)
			return
		}
	}

	reviews, err := h.metricsSvc.ListDailyReviews(c.Request.Context(), ownerID, from, to.AddDate(0, 0, 1))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"reviews": reviews})
}

// POST /api/reviews/daily/recompute?date=YYYY-MM-DD
func (h *ReviewHandler) Recompute(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	date, ok := reviewDate(c)
	if !ok {
		return
	}

	review, err := h.metricsSvc.ComputeDailyReview(c.Request.Context(), ownerID, date)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, review)
}
