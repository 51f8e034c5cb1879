package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	"github.com/4vald/Shop-Project-EKEB/models"
)

// AverageRating is the arithmetic mean of a product's review ratings,
// 0 when there are none.
func AverageRating(db *gorm.DB, productID uint) (float64, error) {
	var avg float64
	err := db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}

// FindProduct looks a product up by numeric id or by slug.
func FindProduct(db *gorm.DB, idOrSlug string) (*models.Product, error) {
	query := db.Preload("Category").Preload("Sales")
	var product models.Product
	if id, err := strconv.ParseUint(idOrSlug, 10, 64); err == nil {
		if err := query.First(&product, uint(id)).Error; err != nil {
			return nil, err
		}
		return &product, nil
	}
	if err := query.Where("slug = ?", idOrSlug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GET /products/:id — id or slug, with reviews and average rating.
func GetProduct(db *gorm.DB, policy catalog.SalePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := FindProduct(db, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}

		avg, err := AverageRating(db, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}

		var reviews []models.Review
		if err := db.Where("product_id = ?", product.ID).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"product":        newProductView(*product, policy),
			"average_rating": avg,
			"reviews":        reviews,
		})
	}
}
