package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenpets/scheduler-api/pkg/httputil"
)

const DefaultMaxBodySize int64 = 1 << 20

// BodyLimit rejects declared bodies above limit and caps the reader for
// chunked ones.
func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			httputil.AbortWithCode(c, http.StatusRequestEntityTooLarge, "payload_too_large", fmt.Sprintf("body size exceeds %d bytes", limit))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
