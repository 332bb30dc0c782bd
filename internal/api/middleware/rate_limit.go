package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/barman-ayush/imitate.ai/internal/ratelimit"
	"github.com/barman-ayush/imitate.ai/internal/utils"
)

// RateLimit rejects callers over quota before any further work. Keys on
// the authenticated user, falling back to client IP. Limiter outages
// fail open.
func RateLimit(limiter ratelimit.Limiter, l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.ClientIP()
		if v, ok := c.Get("user_id"); ok {
			if s, ok := v.(string); ok && s != "" {
				identifier = s
			}
		}

		allowed, err := limiter.Allow(c.Request.Context(), identifier)
		if err != nil {
			l.WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiError{
				Code:    utils.CodeResourceExhausted,
				Message: "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
