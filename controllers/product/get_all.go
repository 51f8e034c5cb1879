package productControllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	"github.com/4vald/Shop-Project-EKEB/models"
)

// productView decorates a product with its resolved promotion.
type productView struct {
	models.Product
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	OnSale          bool            `json:"on_sale"`
	DiscountPercent int             `json:"discount_percent"`
}

func newProductView(p models.Product, policy catalog.SalePolicy) productView {
	view := productView{Product: p, DiscountedPrice: p.Price}
	if sale := catalog.ActiveSale(&p, policy); sale != nil {
		view.OnSale = true
		view.DiscountPercent = sale.DiscountPercent
		view.DiscountedPrice = catalog.SalePrice(p.Price, sale.DiscountPercent)
	}
	return view
}

var sortColumns = map[string]string{
	"created_at": "created_at",
	"price":      "price",
	"title":      "title",
}

// GET /products
//
// Filters: q (title/description, case-insensitive), category_id, min_price,
// max_price, discounted=true (at least one sale attached).
func GetProducts(db *gorm.DB, policy catalog.SalePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("q")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		discounted := c.Query("discounted")
		sortBy, okSort := sortColumns[c.DefaultQuery("sort_by", "created_at")]
		if !okSort {
			sortBy = "created_at"
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Model(&models.Product{}).
			Preload("Category").
			Preload("Sales")

		if search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ?",
				likePattern, likePattern,
			)
		}

		if minPriceStr != "" {
			if mp, err := decimal.NewFromString(minPriceStr); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := decimal.NewFromString(maxPriceStr); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
		}

		if categoryID != "" {
			if cid, err := strconv.ParseUint(categoryID, 10, 64); err == nil {
				query = query.Where("category_id = ?", uint(cid))
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
		}

		if discounted == "true" {
			query = query.
				Joins("JOIN sale_products sp ON sp.product_id = products.id").
				Distinct("products.*")
		}

		var products []models.Product
		if err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		views := make([]productView, 0, len(products))
		for _, p := range products {
			views = append(views, newProductView(p, policy))
		}
		c.JSON(http.StatusOK, views)
	}
}
