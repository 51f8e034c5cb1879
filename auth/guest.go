package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/4vald/Shop-Project-EKEB/pkg/token"
)

// POST /auth/guest
//
// Anonymous shoppers get a session key lazily, on their first interaction
// with the cart. The key lives inside a signed token; the browser carries it
// for the rest of the session.
func CreateGuestSession(secret []byte, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionKey := "guest_" + generateRandomString(16)

		t, err := token.GenerateGuestToken(secret, sessionKey, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_key": sessionKey,
			"token":       t,
			"expires_at":  time.Now().Add(ttl),
		})
	}
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}
