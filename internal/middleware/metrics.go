package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/judeotine/SpendWise/internal/platform/metrics"
)

// Metrics records request count and latency per route template.
func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "not_found"
		}
		rec.ObserveRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
