package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/dzstore/pkg/rediskit"
)

// RateLimit limits requests per authorized user, falling back to the client ip for anonymous
// requests. The request passes when the limiter itself fails.
func RateLimit(limiter RateLimiter, route string, l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithFields(logrus.Fields{"component": "http", "module": "ratelimit", "route": route})
	return func(c *gin.Context) {
		subject := "ip:" + c.ClientIP()
		if userID, ok := c.Get(CurrentUserIDKey); ok {
			subject = fmt.Sprintf("user:%v", userID)
		}

		allowed, err := limiter.Allow(c, rediskit.RateLimitKey(route, subject))
		if err != nil {
			entry.WithError(err).Warn("rate limiter unavailable, letting request through")
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
			return
		}
		c.Next()
	}
}
