package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubLimiter 记录收到的 key 并按预设回答
type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func newRateLimitTestRouter(cfg RateLimitConfig, limiter RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RateLimit(cfg, limiter))
	engine.GET("/references", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return engine
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	engine := newRateLimitTestRouter(RateLimitConfig{Enabled: false}, limiter)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/references", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, limiter.keys)
}

func TestRateLimitAllows(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	engine := newRateLimitTestRouter(RateLimitConfig{Enabled: true, RequestsPerSecond: 10}, limiter)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/references", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, limiter.keys, 1)
	assert.Contains(t, limiter.keys[0], "/references")
}

func TestRateLimitRejects(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	engine := newRateLimitTestRouter(RateLimitConfig{Enabled: true, RequestsPerSecond: 1}, limiter)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/references", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimitFailsOpenOnLimiterError(t *testing.T) {
	limiter := &stubLimiter{allowed: false, err: fmt.Errorf("redis down")}
	engine := newRateLimitTestRouter(RateLimitConfig{Enabled: true, RequestsPerSecond: 1}, limiter)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/references", nil))

	// 限流器故障不得影响业务请求
	assert.Equal(t, http.StatusOK, w.Code)
}
