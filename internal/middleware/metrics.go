package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/metrics"
)

// Metrics returns a middleware that records HTTP metrics labelled by route
// template relative to basePath
func Metrics(m *metrics.Metrics, basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.IsOperationalPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		m.RecordHTTPRequest(c.Request.Method, metrics.RouteLabel(c.FullPath(), basePath), c.Writer.Status(), time.Since(start))
	}
}
