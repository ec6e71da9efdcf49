package middleware

import (
	"net/http"

	"ecosync-hub/internal/redis"
	"ecosync-hub/internal/transport/httpdto"
	"ecosync-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthRateLimitMiddleware throttles login and register attempts per client
// IP. A limiter outage fails open; a brute-force window is better than a
// login outage.
func AuthRateLimitMiddleware(limiter *redis.RateLimiter, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, err := limiter.AllowAuth(c.Request.Context(), c.ClientIP())
		if err != nil {
			l.Warnf("auth rate limit check failed: %s", err.Error())
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("too many attempts", "RATE_LIMITED"))
			c.Abort()
			return
		}
		c.Next()
	}
}
