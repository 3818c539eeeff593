package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is satisfied by the Redis client wrapper.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit applies a fixed window of limit requests per minute per client IP
// and route. The limiter is injected, not a package singleton. Errors talking
// to the limiter fail open: a degraded Redis must not take the endpoint down.
func RateLimit(limiter RateLimiter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()
		allowed, err := limiter.Allow(c.Request.Context(), key, limit, time.Minute)
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
