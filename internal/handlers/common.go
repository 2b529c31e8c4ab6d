package handlers

import (
	"github.com/galerie-com/app-galerie/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sendError logs the failure and sends a JSON error response. The logged
// error may carry provider internals; the response body never does.
func sendError(c *gin.Context, statusCode int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("request_id", c.GetString("request_id")),
	)
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// sendProviderError sends a 5xx with a sanitized detail string alongside
// the generic message. The raw provider body goes to the logs only.
func sendProviderError(c *gin.Context, statusCode int, message, detail string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("provider_detail", detail),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("request_id", c.GetString("request_id")),
	)
	c.JSON(statusCode, ErrorResponse{
		Error:   message,
		Details: sanitizeDetail(detail),
	})
}

// sendSuccess sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

const maxDetailLength = 200

// sanitizeDetail trims provider diagnostic text down to something safe to
// hand a caller: bounded length, no newlines.
func sanitizeDetail(detail string) string {
	sanitized := make([]rune, 0, len(detail))
	for _, r := range detail {
		if r == '\n' || r == '\r' {
			r = ' '
		}
		sanitized = append(sanitized, r)
		if len(sanitized) >= maxDetailLength {
			break
		}
	}
	return string(sanitized)
}
