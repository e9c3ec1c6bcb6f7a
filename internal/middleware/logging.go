// internal/middleware/logging.go
package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one entry per request through logrus, tagged with the
// resource the path addresses.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.Request.URL.Path
		entry := log.WithFields(logrus.Fields{
			"method":        c.Request.Method,
			"path":          path,
			"status":        c.Writer.Status(),
			"duration":      duration.Milliseconds(),
			"ip":            c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
			"resource_type": extractResourceType(path),
		})
		if resourceID := extractResourceID(path); resourceID != "" {
			entry = entry.WithField("resource_id", resourceID)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request processed")
		}
	}
}

// extractResourceType returns the innermost collection named in the path:
// "/v1/carts/<id>/items/3" is "items".
func extractResourceType(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 0 && parts[0] == "v1" {
		parts = parts[1:]
	}

	resource := "unknown"
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i%2 == 0 {
			resource = part
		}
	}
	return resource
}

// extractResourceID returns the last id segment of the path, numeric or UUID.
func extractResourceID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if _, err := strconv.ParseUint(parts[i], 10, 64); err == nil {
			return parts[i]
		}
		if _, err := uuid.Parse(parts[i]); err == nil {
			return parts[i]
		}
	}
	return ""
}
