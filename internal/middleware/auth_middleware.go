package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/services"
)

const currentUserKey = "currentUser"

// UserLoader resolves an authenticated subject into the full account record.
type UserLoader interface {
	GetUser(id string) (*models.User, error)
}

func extractBearerToken(c *gin.Context) string {
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

func resolveUser(c *gin.Context, tokens services.TokenService, users UserLoader) *models.User {
	token := extractBearerToken(c)
	if token == "" {
		return nil
	}
	userID, err := tokens.Validate(token)
	if err != nil {
		return nil
	}
	user, err := users.GetUser(userID)
	if err != nil {
		return nil
	}
	return user
}

// AuthMiddleware rejects requests that do not carry a valid bearer token for
// an existing account.
func AuthMiddleware(tokens services.TokenService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveUser(c, tokens, users)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the account when a valid token is present
// and lets the request through either way.
func OptionalAuthMiddleware(tokens services.TokenService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolveUser(c, tokens, users); user != nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// RoleAuthMiddleware restricts a route to the given role. It must run after
// AuthMiddleware.
func RoleAuthMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Accès non autorisé"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated account, nil when the request was
// anonymous.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
