package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tamiti-backend/internal/requestdata"
	"github.com/yungbote/tamiti-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps service sentinel errors onto status codes; anything
// unrecognized is a 500.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidScope),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidBlockRange),
		errors.Is(err, services.ErrInvalidEventRange):
		RespondError(c, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, services.ErrBlockNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrGoalNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrReviewNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrBlockOverlap),
		errors.Is(err, services.ErrInvalidTransition):
		RespondError(c, http.StatusConflict, "conflict", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

// ownerFromContext pulls the authenticated owner id set by the auth
// middleware. A missing id means the route was miswired, not a user error.
func ownerFromContext(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.OwnerID == uuid.Nil {
		RespondError(c, http.StatusForbidden, "forbidden", errors.New("missing owner identity"))
		return uuid.Nil, false
	}
	return rd.OwnerID, true
}
