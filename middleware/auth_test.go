package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/gurmukh6912/saskfood-connect/middleware"
	"github.com/gurmukh6912/saskfood-connect/models"
)

func protectedRouter(roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := []gin.HandlerFunc{middleware.AuthRequired()}
	if len(roles) > 0 {
		handlers = append(handlers, middleware.RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": middleware.GetUserID(c),
			"role":    middleware.GetRole(c),
		})
	})

	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired_TokenRoundtrip(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "a@b.com", Role: models.RoleDriver}
	token, err := middleware.GenerateToken(user)
	require.NoError(t, err)

	rec := get(protectedRouter(), "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "user-1")
	require.Contains(t, rec.Body.String(), string(models.RoleDriver))
}

func TestAuthRequired_Rejections(t *testing.T) {
	r := protectedRouter()

	rec := get(r, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(r, "Basic dXNlcjpwYXNz")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(r, "Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleRequired(t *testing.T) {
	driver := &models.User{ID: "d", Email: "d@b.com", Role: models.RoleDriver}
	driverToken, err := middleware.GenerateToken(driver)
	require.NoError(t, err)

	// wrong role is an authorization failure
	rec := get(protectedRouter(models.RoleRestaurantOwner), "Bearer "+driverToken)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// any allowed role passes
	rec = get(protectedRouter(models.RoleRestaurantOwner, models.RoleDriver), "Bearer "+driverToken)
	require.Equal(t, http.StatusOK, rec.Code)
}
