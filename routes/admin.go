package routes

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	bannerControllers "github.com/4vald/Shop-Project-EKEB/controllers/banner"
	contactControllers "github.com/4vald/Shop-Project-EKEB/controllers/contact"
	orderControllers "github.com/4vald/Shop-Project-EKEB/controllers/order"
	productControllers "github.com/4vald/Shop-Project-EKEB/controllers/product"
	saleControllers "github.com/4vald/Shop-Project-EKEB/controllers/sale"
	"github.com/4vald/Shop-Project-EKEB/middleware"
)

// SetupAdminRoutes registers the staff CRUD surface behind the API key.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	bannerDir := filepath.Join(d.Config.Uploads.Dir, "banners")

	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey(d.Config.Auth.AdminAPIKey))
	{
		admin.POST("/products", productControllers.CreateProduct(d.DB))
		admin.PUT("/products/:id", productControllers.UpdateProduct(d.DB))
		admin.DELETE("/products/:id", productControllers.DeleteProduct(d.DB))

		admin.POST("/categories", productControllers.CreateCategory(d.DB))
		admin.PUT("/categories/:id", productControllers.UpdateCategory(d.DB))
		admin.DELETE("/categories/:id", productControllers.DeleteCategory(d.DB))

		admin.POST("/sales", saleControllers.CreateSale(d.DB))
		admin.PUT("/sales/:id", saleControllers.UpdateSale(d.DB))
		admin.DELETE("/sales/:id", saleControllers.DeleteSale(d.DB))

		admin.GET("/banners", bannerControllers.GetAllBanners(d.DB))
		admin.POST("/banners", bannerControllers.UploadBanner(d.DB, bannerDir))
		admin.PUT("/banners/:id", bannerControllers.UpdateBanner(d.DB))
		admin.DELETE("/banners/:id", bannerControllers.DeleteBanner(d.DB, bannerDir))

		admin.GET("/orders", orderControllers.GetAllOrdersHandler(d.DB))
		admin.PUT("/orders/:id/status", orderControllers.UpdateOrderStatusHandler(d.DB))

		admin.GET("/contact-messages", contactControllers.GetMessages(d.DB))
	}
}
