package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	"github.com/4vald/Shop-Project-EKEB/pkg/config"
	"github.com/4vald/Shop-Project-EKEB/pkg/session"
)

// Deps carries everything the route groups need to wire their handlers.
type Deps struct {
	DB       *gorm.DB
	Sessions session.Store
	Config   *config.Config
	Policy   catalog.SalePolicy
}

func (d Deps) secret() []byte {
	return []byte(d.Config.Auth.JWTSecret)
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, d)

	// Public browsing
	SetupStoreRoutes(r, d)

	// Identity-scoped routes (user or guest token)
	SetupShopperRoutes(r, d)

	// Admin routes (API-key protected)
	SetupAdminRoutes(r, d)
}
