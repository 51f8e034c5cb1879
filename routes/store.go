package routes

import (
	"github.com/gin-gonic/gin"

	bannerControllers "github.com/4vald/Shop-Project-EKEB/controllers/banner"
	contactControllers "github.com/4vald/Shop-Project-EKEB/controllers/contact"
	productControllers "github.com/4vald/Shop-Project-EKEB/controllers/product"
	saleControllers "github.com/4vald/Shop-Project-EKEB/controllers/sale"
)

// SetupStoreRoutes registers the public browsing endpoints.
func SetupStoreRoutes(r *gin.Engine, d Deps) {
	r.GET("/products", productControllers.GetProducts(d.DB, d.Policy))
	r.GET("/products/:id", productControllers.GetProduct(d.DB, d.Policy))
	r.GET("/categories", productControllers.GetCategories(d.DB))

	r.GET("/sales", saleControllers.GetSales(d.DB))
	r.GET("/sales/:id", saleControllers.GetSale(d.DB))

	r.GET("/banners", bannerControllers.GetBanners(d.DB))

	r.POST("/contact", contactControllers.SubmitMessage(d.DB))
}
