// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		entry := logrus.WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		})

		if userID, exists := c.Get("user_id"); exists {
			entry = entry.WithField("user_id", userID)
		}

		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}
	}
}

// AuditLogger records every authenticated mutating request. Writes
// happen off the request goroutine so a slow insert never delays the
// response.
func AuditLogger(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		var payload string
		if c.Request.Body != nil && c.Request.ContentLength > 0 && c.Request.ContentLength < 4096 {
			body, err := io.ReadAll(c.Request.Body)
			if err == nil {
				payload = string(body)
				c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
			}
		}

		c.Next()

		userIDStr, ok := utils.GetUserIDFromContext(c)
		if !ok {
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return
		}

		entry := models.AuditLog{
			UserID:       &userID,
			Action:       c.Request.Method,
			ResourceType: c.FullPath(),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			Payload:      payload,
		}

		go func(e models.AuditLog) {
			if err := db.Create(&e).Error; err != nil {
				logrus.WithError(err).Warn("failed to persist audit log entry")
			}
		}(entry)
	}
}

// RequestID tags each request so log lines from one request can be
// correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
