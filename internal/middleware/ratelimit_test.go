package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeLimiter struct {
	counts map[string]int
	err    error
}

func (l *fakeLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.counts[key]++
	return l.counts[key] <= limit, nil
}

func limitedRouter(limiter RateLimiter, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/contact", RateLimit(limiter, limit), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func hit(router *gin.Engine) int {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitAllowsWithinBudget(t *testing.T) {
	limiter := &fakeLimiter{counts: make(map[string]int)}
	router := limitedRouter(limiter, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(router))
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(router))
}

func TestRateLimitFailsOpenOnLimiterError(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis down")}
	router := limitedRouter(limiter, 1)

	assert.Equal(t, http.StatusOK, hit(router))
	assert.Equal(t, http.StatusOK, hit(router))
}
