package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/nikalabs/walletchat/internal/ai"
	appErr "github.com/nikalabs/walletchat/internal/pkg/errors"
	"github.com/nikalabs/walletchat/internal/pkg/response"
)

const (
	quotaGuidance = "You've exceeded your AI provider quota. Please check your account billing and add a payment method if needed."
	authGuidance  = "Invalid AI provider API key. Please check your configuration."
)

// handleError maps service errors onto the HTTP contract. Provider failures
// with a dedicated kind keep their status; everything else becomes a plain
// 500 with the underlying message surfaced.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))

	switch {
	case appErr.IsInvalid(err):
		response.Error(c, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ai.ErrUnavailable):
		response.Error(c, http.StatusInternalServerError, "not_configured", "AI provider API key not configured")
	case errors.Is(err, ai.ErrQuotaExceeded):
		response.Error(c, http.StatusTooManyRequests, "quota_exceeded", quotaGuidance)
	case errors.Is(err, ai.ErrAuthFailed):
		response.Error(c, http.StatusUnauthorized, "invalid_api_key", authGuidance)
	case errors.Is(err, ai.ErrEmptyResponse):
		response.Fail(c, http.StatusInternalServerError, "No response from AI")
	default:
		response.Fail(c, http.StatusInternalServerError, err.Error())
	}
}
