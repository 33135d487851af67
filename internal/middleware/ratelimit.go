package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/scoperhq/scoper-api/pkg/errors"
	"github.com/scoperhq/scoper-api/pkg/response"
)

// RateCounter increments a fixed-window counter and reports its value.
type RateCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit caps requests per client IP in a fixed window. The counter
// lives in Redis so the limit holds across instances. On counter errors
// the request goes through.
func RateLimit(counter RateCounter, name string, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())
		count, err := counter.IncrWindow(c.Request.Context(), key, window)
		if err != nil {
			if logger != nil {
				logger.Warn("rate limit counter failed", zap.String("key", key), zap.Error(err))
			}
			c.Next()
			return
		}

		if count > int64(limit) {
			response.Error(c, appErrors.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}
