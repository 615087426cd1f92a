package middleware

import (
	"net/http"
	"strings"

	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/services/user"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ContextActorKey holds the authz.Actor for the authenticated caller.
	ContextActorKey = "actor"
	// ContextUserKey holds the full user document.
	ContextUserKey = "currentUser"
)

// JWTAuthMiddleware validates the bearer token, checks its hash against the
// stored session hash (so revoked tokens die immediately) and puts the actor
// in the request context.
func JWTAuthMiddleware(userSvc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		// The stored hash is cleared on logout; a stale token must not pass.
		u, err := userSvc.GetUserByTokenHash(utils.HashToken(tokenString))
		if err != nil || u == nil || u.ID != userID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session expired or revoked",
			})
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Account is deactivated",
			})
			return
		}

		c.Set(ContextUserKey, u)
		c.Set(ContextActorKey, ActorFromUser(u))
		c.Next()
	}
}

// ActorFromUser builds the authz actor, resolving the provider profile the
// account is linked to.
func ActorFromUser(u *models.User) authz.Actor {
	actor := authz.Actor{ID: u.ID, Role: u.Role}
	switch u.Role {
	case models.RoleGarbageCompany:
		actor.ProfileID = u.GarbageProfileID
	case models.RoleMoverCompany:
		actor.ProfileID = u.MoverProfileID
	}
	return actor
}

// GetActor returns the actor placed in context by JWTAuthMiddleware.
func GetActor(c *gin.Context) (authz.Actor, bool) {
	val, ok := c.Get(ContextActorKey)
	if !ok {
		return authz.Actor{}, false
	}
	actor, ok := val.(authz.Actor)
	return actor, ok
}
