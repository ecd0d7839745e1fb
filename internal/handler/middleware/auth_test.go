//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"book-rental/internal/domain/user"
	"book-rental/internal/handler/middleware"
	"book-rental/internal/pkg/cookie"
	"book-rental/internal/pkg/jwt"
	"book-rental/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret = "test-secret"
	issuer = "book-rental-test"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(secret, issuer, time.Hour)))

	r := gin.New()
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"owner": middleware.GetOwnerID(c), "role": role.String()})
	})
	r.POST("/admin", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.POST("/misconfigured", auth.RequireRoleAtLeast(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func token(t *testing.T, svc *jwt.Service, owner string, role user.Role) string {
	t.Helper()
	tok, err := svc.GenerateToken(owner, role)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	router := newAuthRouter()
	svc := jwt.NewService(secret, issuer, time.Hour)

	testCases := []struct {
		name       string
		method     string
		path       string
		prepare    func(*http.Request)
		expectCode int
		expectBody string
	}{
		{
			name:       "missing token",
			method:     http.MethodGet,
			path:       "/me",
			prepare:    func(*http.Request) {},
			expectCode: http.StatusUnauthorized,
			expectBody: "sign in",
		},
		{
			name:   "garbage token",
			method: http.MethodGet,
			path:   "/me",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-jwt")
			},
			expectCode: http.StatusUnauthorized,
			expectBody: "invalid or has expired",
		},
		{
			name:   "token signed with another secret",
			method: http.MethodGet,
			path:   "/me",
			prepare: func(r *http.Request) {
				other := jwt.NewService("other-secret", issuer, time.Hour)
				r.Header.Set("Authorization", "Bearer "+token(t, other, "owner-1", user.RoleCustomer))
			},
			expectCode: http.StatusUnauthorized,
		},
		{
			name:   "bearer header",
			method: http.MethodGet,
			path:   "/me",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, svc, "owner-1", user.RoleCustomer))
			},
			expectCode: http.StatusOK,
			expectBody: `"owner":"owner-1"`,
		},
		{
			name:   "cookie",
			method: http.MethodGet,
			path:   "/me",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: token(t, svc, "owner-2", user.RoleAdmin)})
			},
			expectCode: http.StatusOK,
			expectBody: `"role":"admin"`,
		},
		{
			name:   "customer on admin route",
			method: http.MethodPost,
			path:   "/admin",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, svc, "owner-1", user.RoleCustomer))
			},
			expectCode: http.StatusForbidden,
			expectBody: "Insufficient permissions",
		},
		{
			name:   "admin on admin route",
			method: http.MethodPost,
			path:   "/admin",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, svc, "ops", user.RoleAdmin))
			},
			expectCode: http.StatusNoContent,
		},
		{
			name:       "role check without authentication",
			method:     http.MethodPost,
			path:       "/misconfigured",
			prepare:    func(*http.Request) {},
			expectCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			tc.prepare(req)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectCode, rec.Code, rec.Body.String())
			if tc.expectBody != "" {
				assert.Contains(t, rec.Body.String(), tc.expectBody)
			}
		})
	}
}

func TestGetOwnerID_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, middleware.GetOwnerID(c))
	_, ok := middleware.GetUserRole(c)
	assert.False(t, ok)
}
