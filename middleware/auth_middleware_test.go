package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YetundeAlabi/E-voting/config"
	"github.com/YetundeAlabi/E-voting/testutil"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", JWTAuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/admin", JWTAuthMiddleware(), AdminRequired(), func(c *gin.Context) {
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

func TestJWTAuthMiddleware(t *testing.T) {
	config.JWTSecret = []byte("test-secret")
	router := setupRouter(t)

	// Missing header.
	w := get(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = get(router, "/protected", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString(config.JWTSecret)
	require.NoError(t, err)
	w = get(router, "/protected", signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong secret.
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err = foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	w = get(router, "/protected", signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Refresh tokens are not access tokens.
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"refresh": true,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err = refresh.SignedString(config.JWTSecret)
	require.NoError(t, err)
	w = get(router, "/protected", signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token passes through.
	db := testutil.SetupTestDB(t)
	config.DB = db
	user := testutil.CreateUser(t, db, "user@example.com", false)
	w = get(router, "/protected", testutil.AuthToken(t, user.ID, config.JWTSecret))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequired(t *testing.T) {
	config.JWTSecret = []byte("test-secret")
	db := testutil.SetupTestDB(t)
	config.DB = db
	router := setupRouter(t)

	user := testutil.CreateUser(t, db, "user@example.com", false)
	admin := testutil.CreateUser(t, db, "admin@example.com", true)

	w := get(router, "/admin", testutil.AuthToken(t, user.ID, config.JWTSecret))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(router, "/admin", testutil.AuthToken(t, admin.ID, config.JWTSecret))
	assert.Equal(t, http.StatusOK, w.Code)

	// Token for a user that no longer exists.
	w = get(router, "/admin", testutil.AuthToken(t, 9999, config.JWTSecret))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
