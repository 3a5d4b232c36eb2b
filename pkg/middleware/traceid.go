package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceIDHeader = "X-Trace-ID"

// TraceIDMiddleware stamps each request with a trace id, reusing the
// inbound header when the caller already supplied one.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set("trace_id", traceID)
		c.Writer.Header().Set(traceIDHeader, traceID)
		c.Next()
	}
}
