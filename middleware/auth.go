package middleware

import (
	"net/http"
	"strings"

	userRepo "salonbook/database/repository/user"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the authenticated user is stored on the gin
// context.
const ContextUserKey = "user"

// JWTAuthMiddleware validates the bearer token, loads the account it
// names and stores it on the context. Deactivated accounts are rejected
// even with a valid token.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown account"})
			return
		}
		if !u.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}

		c.Set(ContextUserKey, u)
		c.Next()
	}
}
