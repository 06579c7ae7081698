package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agenpets/scheduler-api/pkg/httputil"
)

// Timeout bounds the request context. Handlers run on the request goroutine
// and are expected to honour ctx; a handler that ran out of time without
// writing anything gets a 504.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !c.Writer.Written() && stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			httputil.AbortWithCode(c, http.StatusGatewayTimeout, "timeout", "request timeout")
		}
	}
}
