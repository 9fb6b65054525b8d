package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/service"
)

// Detail writes the error envelope used across the API.
func Detail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"detail": message})
}

// AbortDetail is Detail for middleware, stopping the handler chain.
func AbortDetail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": message})
}

// WriteServiceError maps a service-layer error to an HTTP response. Anything
// that is not a *service.Error becomes a 500 with the fallback message.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := service.AsServiceError(err); ok {
		Detail(c, statusFor(serviceErr.Code), serviceErr.Message)
		return
	}
	Detail(c, http.StatusInternalServerError, fallbackMessage)
}

func statusFor(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeValidation:
		return http.StatusBadRequest
	case service.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case service.ErrorCodeForbidden:
		return http.StatusForbidden
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	case service.ErrorCodeConflict:
		return http.StatusConflict
	case service.ErrorCodeUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
