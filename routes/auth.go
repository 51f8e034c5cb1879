package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/4vald/Shop-Project-EKEB/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	guestTTL := time.Duration(d.Config.Auth.GuestTTLHours) * time.Hour
	if guestTTL == 0 {
		guestTTL = 24 * time.Hour
	}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(d.DB, d.secret()))
		authGroup.POST("/login", auth.Login(d.DB, d.secret()))
		authGroup.POST("/guest", auth.CreateGuestSession(d.secret(), guestTTL))
	}
}
