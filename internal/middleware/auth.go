package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/database"
	"taskboard-api/internal/logging"
	"taskboard-api/internal/models"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	UserKey    = "user"
	UserIDKey  = "user_id"
	TokenIDKey = "token_id"
)

// JWTAuthMiddleware validates the bearer token and binds the principal to the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		// Fallback for WebSocket/browser where custom headers cannot be set: allow token in query param
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}

		user, record, err := auth.ResolveToken(database.GetDB().WithContext(c.Request.Context()), tokenString)
		if err != nil {
			if !errors.Is(err, auth.ErrTokenRevoked) && !errors.Is(err, auth.ErrInvalidToken) {
				logging.Logger.Errorf("Event ID: AUTH_LOOKUP_FAILED, Description: %s %s failed: %v", c.Request.Method, c.FullPath(), err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
				return
			}
			if errors.Is(err, auth.ErrTokenRevoked) {
				logging.Logger.Debugf("Event ID: AUTH_TOKEN_REVOKED, Description: Revoked token used for %s %s", c.Request.Method, c.FullPath())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}

		// Store user info in context for use in handlers
		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Set(TokenIDKey, record.ID)

		c.Next()
	}
}

// CurrentUser returns the principal bound by JWTAuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
