package handlers

import (
	"bytes"
	"io"
	"time"

	"github.com/galerie-com/app-galerie/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLog represents a structured log entry for an HTTP request
type RequestLog struct {
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Query     string    `json:"query"`
	UserAgent string    `json:"user_agent"`
	ClientIP  string    `json:"client_ip"`
	RequestID string    `json:"request_id"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// RequestID attaches a unique identifier to each request for log
// correlation and echoes it back in the X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// LogRequest logs the full request including its body. Only wired outside
// release mode; sponsor request bodies carry transaction kind bytes that are
// noisy and caller-private.
func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := getRequestBody(c)
		if err != nil {
			logger.Error("Failed to read request body", zap.Error(err))
			c.Next()
			return
		}

		requestLog := RequestLog{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Query:     c.Request.URL.RawQuery,
			UserAgent: c.Request.UserAgent(),
			ClientIP:  c.ClientIP(),
			RequestID: c.GetString("request_id"),
			Body:      string(bodyBytes),
			Timestamp: time.Now().UTC(),
		}

		logger.Debug("Request received",
			zap.String("method", requestLog.Method),
			zap.String("path", requestLog.Path),
			zap.String("query", requestLog.Query),
			zap.String("user_agent", requestLog.UserAgent),
			zap.String("client_ip", requestLog.ClientIP),
			zap.String("request_id", requestLog.RequestID),
			zap.String("body", requestLog.Body),
		)

		c.Next()
	}
}

// getRequestBody reads the request body and restores it so the handler can
// still bind it.
func getRequestBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	return bodyBytes, nil
}
