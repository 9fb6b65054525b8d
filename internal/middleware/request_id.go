package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, honoring one supplied by the
// caller so ids stay stable across proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// RequestIDFrom reads the id set by RequestID.
func RequestIDFrom(c *gin.Context) string {
	return c.Writer.Header().Get(requestIDHeader)
}
