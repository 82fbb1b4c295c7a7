package middleware

import (
	"net/http"
	"strings"

	"wavehub/internal/utils"

	"github.com/gin-gonic/gin"
)

const userIDContextKey = "user_id"

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user id in the gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromRequest(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// OptionalAuth stores the user id when a valid bearer token is present but
// lets anonymous requests through. Handlers that need a session check the
// context themselves.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := userIDFromRequest(c); ok {
			c.Set(userIDContextKey, userID)
		}
		c.Next()
	}
}

func userIDFromRequest(c *gin.Context) (int, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return 0, false
	}

	claims, err := utils.ValidateToken(tokenParts[1])
	if err != nil {
		return 0, false
	}

	return claims.UserID, true
}
