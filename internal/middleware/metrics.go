package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maheynails/studio-api/internal/monitoring"
)

// Metrics records request counts and latencies per route. Registered routes
// are labelled by their pattern (c.FullPath) so path params don't explode
// label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		monitoring.RequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		monitoring.RequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
