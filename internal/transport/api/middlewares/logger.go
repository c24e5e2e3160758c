package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger writes one access log line per request. Private gin errors are attached to the entry.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"clientIP":  c.ClientIP(),
			"requestID": c.GetString(RequestIDKey),
		}
		if userID, ok := c.Get(CurrentUserIDKey); ok {
			fields["userID"] = userID
		}
		le := entry.WithFields(fields)

		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			le = le.WithField("errors", errs.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			le.Error("request failed")
		case status >= 400:
			le.Warn("request rejected")
		default:
			le.Info("request handled")
		}
	}
}
