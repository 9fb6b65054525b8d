package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/models"
)

func rolesRouter(user models.User, allowed ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x",
		func(c *gin.Context) { c.Set(currentUserKey, user); c.Next() },
		RequireRoles(allowed...),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRequireRolesForbidsUser(t *testing.T) {
	r := rolesRouter(models.User{ID: "u1", Role: models.RoleUser}, models.RoleAdmin, models.RoleModerator)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if w.Body.String() != `{"detail":"Operation forbidden"}` {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestRequireRolesAllowsModerator(t *testing.T) {
	r := rolesRouter(models.User{ID: "m1", Role: models.RoleModerator}, models.RoleAdmin, models.RoleModerator)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireRolesWithoutAuthUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", RequireRoles(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
