package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/httpx"
	"photoshare/api/internal/models"
)

// RequireRoles gates a route to an explicit allow-list of roles, evaluated
// after Auth. Each route passes its own list at registration; there is no
// shared registry.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	roleSet := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			httpx.AbortDetail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		if _, allowed := roleSet[user.Role]; !allowed {
			httpx.AbortDetail(c, http.StatusForbidden, "Operation forbidden")
			return
		}

		c.Next()
	}
}
