package middleware

import (
	"net/http"

	"nyumbani/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles aborts the request unless the authenticated actor's role is
// one of the given roles. Must run after JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		if !allowed[actor.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions for this resource",
			})
			return
		}
		c.Next()
	}
}

// AdminOnly restricts a route group to admin accounts.
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}
