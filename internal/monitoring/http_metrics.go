package monitoring

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

var activeHTTPRequests atomic.Int64
var totalHTTPRequests atomic.Uint64

// RequestMetricsMiddleware tracks basic HTTP request counters.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		activeHTTPRequests.Add(1)
		totalHTTPRequests.Add(1)
		defer activeHTTPRequests.Add(-1)
		c.Next()
	}
}

// Stats returns the current request counters and process uptime. Consumed by
// the status endpoint.
func Stats() (active int64, total uint64, uptime time.Duration) {
	return activeHTTPRequests.Load(), totalHTTPRequests.Load(), time.Since(startedAt)
}
