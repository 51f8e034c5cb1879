package saleControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	"github.com/4vald/Shop-Project-EKEB/models"
)

type SaleInput struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	DiscountPercent int    `json:"discount_percent" binding:"min=0"`
	Banner          string `json:"banner"`
	ProductIDs      []uint `json:"product_ids"`
}

// GET /sales
func GetSales(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sales []models.Sale
		if err := db.Order("created_at DESC").Find(&sales).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
			return
		}
		c.JSON(http.StatusOK, sales)
	}
}

// GET /sales/:id — the sale plus its products, each priced under this sale.
func GetSale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale id"})
			return
		}

		var sale models.Sale
		if err := db.Preload("Products").First(&sale, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sale"})
			return
		}

		type saleProduct struct {
			models.Product
			DiscountedPrice string `json:"discounted_price"`
		}
		products := make([]saleProduct, 0, len(sale.Products))
		for _, p := range sale.Products {
			products = append(products, saleProduct{
				Product:         p,
				DiscountedPrice: catalog.SalePrice(p.Price, sale.DiscountPercent).String(),
			})
		}

		c.JSON(http.StatusOK, gin.H{"sale": sale, "products": products})
	}
}

// POST /admin/sales
func CreateSale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SaleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var products []models.Product
		if len(input.ProductIDs) > 0 {
			if err := db.Where("id IN ?", input.ProductIDs).Find(&products).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
				return
			}
		}

		sale := models.Sale{
			Title:           input.Title,
			Description:     input.Description,
			DiscountPercent: input.DiscountPercent,
			Banner:          input.Banner,
			Products:        products,
		}
		if err := db.Create(&sale).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
			return
		}
		c.JSON(http.StatusCreated, sale)
	}
}

// PUT /admin/sales/:id
func UpdateSale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale id"})
			return
		}
		var input SaleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var sale models.Sale
		if err := db.First(&sale, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sale"})
			return
		}

		sale.Title = input.Title
		sale.Description = input.Description
		sale.DiscountPercent = input.DiscountPercent
		sale.Banner = input.Banner

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&sale).Error; err != nil {
				return err
			}
			if input.ProductIDs == nil {
				return nil
			}
			var products []models.Product
			if len(input.ProductIDs) > 0 {
				if err := tx.Where("id IN ?", input.ProductIDs).Find(&products).Error; err != nil {
					return err
				}
			}
			return tx.Model(&sale).Association("Products").Replace(products)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sale"})
			return
		}
		c.JSON(http.StatusOK, sale)
	}
}

// DELETE /admin/sales/:id
func DeleteSale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale id"})
			return
		}

		var sale models.Sale
		if err := db.First(&sale, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sale"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&sale).Association("Products").Clear(); err != nil {
				return err
			}
			return tx.Delete(&sale).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
	}
}
