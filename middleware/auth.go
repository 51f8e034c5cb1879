package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/4vald/Shop-Project-EKEB/models"
	"github.com/4vald/Shop-Project-EKEB/pkg/token"
)

const (
	ctxOwnerKey = "cart_owner"
	ctxUserKey  = "user_id"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireIdentity accepts either a registered user token or a guest session
// token and threads the resolved owner into the request context.
func RequireIdentity(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		claims, err := token.Parse(secret, raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		switch claims.Role {
		case token.RoleUser:
			c.Set(ctxUserKey, claims.UserID)
			c.Set(ctxOwnerKey, models.UserOwner(claims.UserID))
		case token.RoleGuest:
			c.Set(ctxOwnerKey, models.GuestOwner(claims.SessionKey))
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUser rejects guests: checkout, reviews and profile access need an
// authenticated account.
func RequireUser(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		claims, err := token.Parse(secret, raw)
		if err != nil || claims.Role != token.RoleUser {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to continue"})
			c.Abort()
			return
		}
		c.Set(ctxUserKey, claims.UserID)
		c.Set(ctxOwnerKey, models.UserOwner(claims.UserID))
		c.Next()
	}
}

// Owner extracts the identity set by RequireIdentity/RequireUser.
func Owner(c *gin.Context) (models.CartOwner, bool) {
	v, ok := c.Get(ctxOwnerKey)
	if !ok {
		return models.CartOwner{}, false
	}
	owner, ok := v.(models.CartOwner)
	return owner, ok
}

// UserID extracts the authenticated user id set by RequireUser.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
