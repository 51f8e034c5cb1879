package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/4vald/Shop-Project-EKEB/controllers/cart"
	orderControllers "github.com/4vald/Shop-Project-EKEB/controllers/order"
	reviewControllers "github.com/4vald/Shop-Project-EKEB/controllers/review"
	userControllers "github.com/4vald/Shop-Project-EKEB/controllers/user"
	"github.com/4vald/Shop-Project-EKEB/middleware"
)

// SetupShopperRoutes registers everything a shopping identity (registered
// user or guest session) can do.
func SetupShopperRoutes(r *gin.Engine, d Deps) {
	// User or guest token
	identity := r.Group("/")
	identity.Use(middleware.RequireIdentity(d.secret()))
	{
		cartGroup := identity.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(d.DB, d.Policy))
			cartGroup.POST("", cartControllers.AddToCart(d.DB))
			cartGroup.PUT("/items/:id", cartControllers.UpdateCartItem(d.DB))
			cartGroup.DELETE("/items/:id", cartControllers.DeleteCartItem(d.DB))
			cartGroup.DELETE("", cartControllers.ClearCart(d.DB))
		}

		identity.GET("/orders", orderControllers.GetMyOrdersHandler(d.DB, d.Sessions))
		identity.POST("/payment/confirm", orderControllers.ConfirmPaymentHandler(d.DB, d.Sessions))
	}

	// Registered users only
	users := r.Group("/")
	users.Use(middleware.RequireUser(d.secret()))
	{
		users.POST("/checkout", orderControllers.CheckoutHandler(d.DB, d.Sessions, d.Policy))
		users.POST("/products/:id/reviews", reviewControllers.AddReview(d.DB))
		users.GET("/profile", userControllers.GetProfile(d.DB))
		users.PUT("/profile", userControllers.UpdateProfile(d.DB))
	}
}
