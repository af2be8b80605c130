package middleware

import (
	"net/http"

	"salonbook/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the authenticated user set by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// RequireTypes aborts unless the authenticated user has one of the
// given user types.
func RequireTypes(types ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !allowed[u.UserType] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts unless the authenticated user is an admin of
// either tier.
func RequireAdmin() gin.HandlerFunc {
	return RequireTypes(models.AdminTypes...)
}
