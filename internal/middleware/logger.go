package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agenpets/scheduler-api/pkg/metrics"
)

// Logger writes one line per request and records request metrics under the
// matched route template.
func Logger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status), latency)

		if raw != "" {
			path = path + "?" + raw
		}

		logger := zerolog.Ctx(c.Request.Context())
		var event *zerolog.Event
		var msg string
		switch {
		case status >= 500:
			event, msg = logger.Error(), "Server error"
		case status >= 400:
			event, msg = logger.Warn(), "Client error"
		default:
			event, msg = logger.Info(), "Request processed"
		}

		event.
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("user_agent", c.Request.UserAgent())
		if len(c.Errors) > 0 {
			event.Str("errors", c.Errors.String())
		}
		event.Msg(msg)
	}
}
