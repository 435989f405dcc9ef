package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service-layer sentinel errors onto HTTP statuses.
// Anything unrecognized is logged server-side and reported generically.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "You must be logged in to use this feature")
	case errors.Is(err, ErrUsageLimitReached):
		RespondError(c, http.StatusForbidden, "You have reached your usage limit for this feature. Please upgrade your plan for more access.")
	case errors.Is(err, ErrNoTranscript):
		RespondError(c, http.StatusNotFound, "No transcript available for this video")
	case errors.Is(err, ErrInvalidVideoURL):
		RespondError(c, http.StatusBadRequest, "Invalid YouTube URL or video ID")
	case errors.Is(err, ErrInvalidTier):
		RespondError(c, http.StatusBadRequest, "Invalid tier value. Must be one of: free, basic, pro")
	case errors.Is(err, ErrInvalidStyle):
		RespondError(c, http.StatusBadRequest, "Invalid style selected")
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, ErrPlanNotFound), errors.Is(err, RecordNotFound):
		RespondError(c, http.StatusNotFound, "Record not found")
	case errors.Is(err, ErrUpstreamFailure):
		log.Printf("Upstream error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Failed to process request")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
