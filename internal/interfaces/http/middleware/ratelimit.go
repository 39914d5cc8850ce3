package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"warden/internal/infrastructure/ratelimit"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// RateLimit throttles a route per client IP. When the limiter is nil or its
// backend fails, requests pass through.
func RateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := c.FullPath() + ":" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request",
				"path", c.FullPath(),
				"error", err)
			c.Next()
			return
		}

		if remaining, err := limiter.Remaining(c.Request.Context(), key); err == nil {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}

		if !allowed {
			log.Infow("rate limit exceeded", "path", c.FullPath(), "client_ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusTooManyRequests, errors.CodeRateLimited, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
