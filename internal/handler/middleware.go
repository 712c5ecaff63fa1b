package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/commentboard/backend/internal/model"
	"github.com/commentboard/backend/internal/token"
)

const authUserKey = "auth_user"

// Permission flag names as they appear in route gates.
const (
	PermissionRead   = "read"
	PermissionWrite  = "write"
	PermissionDelete = "delete"
)

type UserLoader interface {
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
}

// AuthMiddleware resolves the caller's identity from a bearer access
// token. The permission flags come from the store on every request, not
// from token claims, so a flag change applies to the very next call
// without re-login.
func AuthMiddleware(codec *token.Codec, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthenticated(c)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			abortUnauthenticated(c)
			return
		}

		userID, err := codec.Verify(tokenStr, token.Access)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// A token for a vanished user is as good as no token.
			abortUnauthenticated(c)
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

// RequirePermission gates a route on one permission flag. It must run
// after AuthMiddleware: identity first, capability second.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			abortUnauthenticated(c)
			return
		}

		if !hasPermission(user, permission) {
			c.JSON(http.StatusForbidden, gin.H{"error": permission + " permission required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.User {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.User); ok {
			return user
		}
	}
	return nil
}

func hasPermission(user *model.User, permission string) bool {
	switch permission {
	case PermissionRead:
		return user.CanRead
	case PermissionWrite:
		return user.CanWrite
	case PermissionDelete:
		return user.CanDelete
	default:
		return false
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	c.Abort()
}
