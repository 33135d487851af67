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
	"go.uber.org/zap"
)

type stubCounter struct {
	count int64
	err   error
	keys  []string
}

func (s *stubCounter) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return 0, s.err
	}
	s.count++
	return s.count, nil
}

func newLimitedRouter(counter RateCounter, limit int) *gin.Engine {
	r := gin.New()
	r.GET("/salaries", RateLimit(counter, "list", limit, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	counter := &stubCounter{}
	r := newLimitedRouter(counter, 2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Len(t, counter.keys, 2)
	assert.Contains(t, counter.keys[0], "ratelimit:list:")
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	counter := &stubCounter{count: 2}
	r := newLimitedRouter(counter, 2)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRateLimitOpenOnCounterError(t *testing.T) {
	counter := &stubCounter{err: errors.New("redis down")}
	r := newLimitedRouter(counter, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDisabledWithoutCounter(t *testing.T) {
	r := newLimitedRouter(nil, 1)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
