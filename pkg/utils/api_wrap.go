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

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Quiz session not found or expired")
	case errors.Is(err, ErrUnknownQuestion):
		RespondError(c, http.StatusBadRequest, "Unknown question id")
	case errors.Is(err, ErrAnswerRequired):
		RespondError(c, http.StatusUnprocessableEntity, "This step requires an answer before continuing")
	case errors.Is(err, ErrAlreadySubmitted):
		RespondError(c, http.StatusConflict, "Quiz was already submitted")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrRateLimited):
		RespondError(c, http.StatusTooManyRequests, "Too many requests, slow down")
	case errors.Is(err, ErrAllModelsBusy):
		RespondError(c, http.StatusServiceUnavailable, AllModelsBusyMessage)
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
