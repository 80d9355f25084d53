package mw

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"livecounter-backend/internal/metrics"
)

// Metrics records request duration and in-flight count.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		m.RequestsInFlight.Inc()
		start := time.Now()

		c.Next()

		m.RequestDuration.
			WithLabelValues(route(c), c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
		m.RequestsInFlight.Dec()
	}
}
