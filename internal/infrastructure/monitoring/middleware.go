package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Route template keeps label cardinality bounded (/workspaces/:id)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
			int64(c.Writer.Size()),
		)
	}
}

// Handler serves the collector's registry in Prometheus exposition format
func Handler(metrics *Metrics) gin.HandlerFunc {
	h := promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Timer measures image service call duration
type Timer struct {
	start     time.Time
	metrics   *Metrics
	operation string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, operation string) *Timer {
	return &Timer{
		start:     time.Now(),
		metrics:   metrics,
		operation: operation,
	}
}

// Stop stops the timer and records the duration. Nil-safe.
func (t *Timer) Stop(outcome string) {
	if t == nil || t.metrics == nil {
		return
	}
	t.metrics.RecordIconCall(t.operation, outcome, time.Since(t.start))
}
