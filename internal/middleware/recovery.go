package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"photoshare/api/internal/httpx"
)

// Recovery turns panics into 500 responses using the API's error envelope.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("error", r).
					Bytes("stack", debug.Stack()).
					Str("request_id", RequestIDFrom(c)).
					Msg("panic recovered")
				httpx.AbortDetail(c, http.StatusInternalServerError, "Internal server error")
			}
		}()
		c.Next()
	}
}
