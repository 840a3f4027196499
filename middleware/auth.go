package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"staybook-backend/models"
	"staybook-backend/services"
	"staybook-backend/utils"
)

const (
	principalIDKey = "principalID"
	principalKey   = "principal"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate requires a valid bearer token and stores the principal id for
// downstream handlers.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing authorization token"})
			return
		}
		id, err := utils.ParseAccessToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(principalIDKey, id)
		c.Next()
	}
}

// OptionalAuthenticate stores the principal id when a valid token is present
// and lets anonymous requests through.
func OptionalAuthenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if id, err := utils.ParseAccessToken(secret, raw); err == nil {
				c.Set(principalIDKey, id)
			}
		}
		c.Next()
	}
}

// RequireRole is the explicit route guard: it resolves the authenticated
// principal and admits the request only when the principal's role is in the
// required set. Unknown principal -> 404, wrong role -> 403.
func RequireRole(users *services.UserService, required ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PrincipalID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing authorization token"})
			return
		}

		user, err := users.Authorize(id, required...)
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		case errors.Is(err, services.ErrForbidden):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access forbidden: insufficient permissions"})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to resolve principal"})
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// PrincipalID returns the authenticated principal's id, when present.
func PrincipalID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(principalIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Principal returns the user resolved by RequireRole, when present.
func Principal(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
