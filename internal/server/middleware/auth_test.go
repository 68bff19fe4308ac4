package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/forkful/saucier/internal/auth"
	"github.com/forkful/saucier/internal/server/middleware"
	"github.com/forkful/saucier/internal/store"
)

func newAuthRouter(tokens *auth.TokenProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(tokens))
	r.GET("/probe", func(c *gin.Context) {
		ctxUser, _ := c.Request.Context().Value(store.ContextKeyUserID).(string)
		c.JSON(http.StatusOK, gin.H{
			"user_id": middleware.UserID(c),
			"ctx":     ctxUser,
		})
	})
	return r
}

func TestAuthValidToken(t *testing.T) {
	tokens := auth.NewTokenProvider("test-secret-0123456789", 15*time.Minute, time.Hour)
	router := newAuthRouter(tokens)

	token, err := tokens.IssueAccessToken("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
	assert.Contains(t, w.Body.String(), `"ctx":"user-1"`)
}

func TestAuthMissingHeader(t *testing.T) {
	tokens := auth.NewTokenProvider("test-secret-0123456789", 15*time.Minute, time.Hour)
	router := newAuthRouter(tokens)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	tokens := auth.NewTokenProvider("test-secret-0123456789", 15*time.Minute, time.Hour)
	router := newAuthRouter(tokens)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRefreshTokenRejected(t *testing.T) {
	tokens := auth.NewTokenProvider("test-secret-0123456789", 15*time.Minute, time.Hour)
	router := newAuthRouter(tokens)

	refresh, err := tokens.IssueRefreshToken("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
