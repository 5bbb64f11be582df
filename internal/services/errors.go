package services

import "errors"

// Sentinel errors mapped to HTTP status codes in the handlers. Packing-level
// issues (shortfalls, empty availability, unmet dependencies) are reported
// structurally in responses and never surface as errors.
var (
	ErrInvalidScope       = errors.New("scope must be 'day' or 'week'")
	ErrInvalidDate        = errors.New("invalid date format (YYYY-MM-DD)")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidTransition  = errors.New("illegal block status transition")
	ErrInvalidBlockRange  = errors.New("block end must be after start")
	ErrBlockOverlap       = errors.New("block overlaps an existing committed block")
	ErrBlockNotFound      = errors.New("time block not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrGoalNotFound       = errors.New("work goal not found")
	ErrEventNotFound      = errors.New("calendar event not found")
	ErrReviewNotFound     = errors.New("daily review not found")
	ErrInvalidEventRange  = errors.New("event end must be after start")
)
