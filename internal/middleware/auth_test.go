package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret"

func signToken(t *testing.T, secret string, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := &services.JwtCustomClaims{
		UserID: 7,
		Email:  "ada@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", RequireAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(ContextUserID)})
	})
	router.GET("/admin", RequireAuth(testSecret), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func get(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	router := authRouter()
	token := signToken(t, testSecret, "customer", time.Hour)
	w := get(router, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	router := authRouter()
	w := get(router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	router := authRouter()
	token := signToken(t, "other_secret", "customer", time.Hour)
	w := get(router, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	router := authRouter()
	token := signToken(t, testSecret, "customer", -time.Minute)
	w := get(router, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	router := authRouter()

	w := get(router, "/admin", signToken(t, testSecret, "admin", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(router, "/admin", signToken(t, testSecret, "customer", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
