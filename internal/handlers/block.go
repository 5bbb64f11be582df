package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/services"
)

type BlockHandler struct {
	log      *logger.Logger
	blockSvc services.BlockService
}

func NewBlockHandler(log *logger.Logger, blockSvc services.BlockService) *BlockHandler {
	return &BlockHandler{
		log:      log.With("handler", "BlockHandler"),
		blockSvc: blockSvc,
	}
}

// GET /api/blocks?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *BlockHandler) List(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	from, err := time.Parse("2006-01-02", c.DefaultQuery("from", time.Now().Format("2006-01-02")))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", services.ErrInvalidDate)
		return
	}
	to := from.AddDate(0, 0, 1)
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", services.ErrInvalidDate)
			return
		}
	}

	blocks, err := h.blockSvc.List(c.Request.Context(), ownerID, from, to)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"blocks": blocks})
}

// POST /api/blocks
func (h *BlockHandler) Create(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var input services.CreateBlockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	block, err := h.blockSvc.CreateManual(c.Request.Context(), ownerID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, block)
}

// PATCH /api/blocks/:id/status
func (h *BlockHandler) UpdateStatus(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	blockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid block id"))
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	block, err := h.blockSvc.UpdateStatus(c.Request.Context(), ownerID, blockID, body.Status)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, block)
}
