package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forkful/saucier/internal/auth"
	"github.com/forkful/saucier/internal/store"
	"github.com/forkful/saucier/pkg/api"
)

// Auth validates a Bearer access token and injects the user ID into the
// request context under store.ContextKeyUserID.
func Auth(tokens *auth.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				api.UnauthorizedError("Missing Authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				api.UnauthorizedError("Invalid Authorization header format"))
			return
		}

		userID, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				api.UnauthorizedError("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(c.Request.Context(), store.ContextKeyUserID, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("userID", userID)

		c.Next()
	}
}

// UserID returns the authenticated user ID set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString("userID")
}
