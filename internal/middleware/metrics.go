package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scoperhq/scoper-api/internal/service"
)

// Metrics observes every request's method, route and latency. Unmatched
// routes collapse into one label so 404 scans cannot blow up the
// cardinality of the route label.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
