package middleware

import (
	"net/http"
	"strings"

	"festoria/config"
	"festoria/models"
	"festoria/utils"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// JWTAuthMiddleware resolves the acting identity and role from the Bearer
// token and stores it on the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		actor, err := utils.ExtractActorFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// RequireRole rejects requests whose resolved actor is not in the allowed set.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Action not permitted for this role"})
	}
}

// CallbackAuthMiddleware authenticates gateway callbacks with the shared
// callback secret instead of a user token.
func CallbackAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.AppConfig.PaymentCallbackSecret
		if secret == "" || c.GetHeader("X-Callback-Secret") != secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		c.Set(actorContextKey, models.SystemActor)
		c.Next()
	}
}

// ActorFromContext returns the actor resolved by the auth middleware.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	v, exists := c.Get(actorContextKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
