package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/cache"
	"photoshare/api/internal/httpx"
	"photoshare/api/internal/models"
	"photoshare/api/internal/repository"
	"photoshare/api/internal/security"
)

const currentUserKey = "current_user"

// UserStore is the slice of the user repository the identity resolver needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// Auth resolves the bearer token to a user record. The token's subject is
// the user's email; the record is served from the read-through cache when
// possible and the store otherwise. Banned users are rejected here so no
// handler has to re-check.
func Auth(jwtSecret string, users UserStore, userCache *cache.UserCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			httpx.AbortDetail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseToken(tokenStr, jwtSecret, security.ScopeAccess)
		if err != nil {
			httpx.AbortDetail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		email := claims.Subject

		user, err := userCache.Get(c.Request.Context(), email)
		if err != nil {
			user, err = users.FindByEmail(c.Request.Context(), email)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					httpx.AbortDetail(c, http.StatusUnauthorized, "Could not validate credentials")
					return
				}
				httpx.AbortDetail(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			_ = userCache.Put(c.Request.Context(), user)
		}

		if user.Banned {
			httpx.AbortDetail(c, http.StatusForbidden, "Your account is banned")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity resolved by Auth. The second result is
// false on routes that skipped the middleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
