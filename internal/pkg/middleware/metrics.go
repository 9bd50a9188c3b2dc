package middleware

import (
	"runtime"
	"strconv"
	"time"

	"scholarshub/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records per-request prometheus series and refreshes the
// goroutine gauge.
func MetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetGlobalCollector()
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		collector.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
		collector.UpdateActiveGoroutines(runtime.NumGoroutine())
	}
}
