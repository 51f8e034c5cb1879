package reviewControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/4vald/Shop-Project-EKEB/middleware"
	"github.com/4vald/Shop-Project-EKEB/models"
)

type ReviewInput struct {
	// Rating is intended to be 1-5. Only the lower bound is enforced,
	// matching the storefront's current validation.
	Rating int    `json:"rating" binding:"required,min=1"`
	Text   string `json:"text"`
	Image  string `json:"image"`
}

// POST /products/:id/reviews (authenticated users only)
//
// A user may review the same product more than once; there is no
// per-(user, product) uniqueness.
func AddReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to leave a review"})
			return
		}

		productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, uint(productID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		review := models.Review{
			ProductID: product.ID,
			UserID:    userID,
			Rating:    input.Rating,
			Text:      input.Text,
			Image:     input.Image,
		}
		if err := db.Create(&review).Error; err != nil {
			zap.L().Error("failed to create review", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}
