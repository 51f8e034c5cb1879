package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	"github.com/4vald/Shop-Project-EKEB/middleware"
	"github.com/4vald/Shop-Project-EKEB/models"
	"github.com/4vald/Shop-Project-EKEB/pricing"
)

var ErrItemNotFound = errors.New("cart item not found")

// -------- Core Logic --------

// AddItem upserts the (owner, product) cart row: a repeat add sums
// quantities instead of creating a second row.
func AddItem(db *gorm.DB, owner models.CartOwner, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		return nil, err
	}

	var item models.CartItem
	err := owner.Scope(db).Where("product_id = ?", productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		owner.Fill(&item)
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		item.Product = product
		return &item, nil
	}
	if err != nil {
		return nil, err
	}

	item.Quantity += quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	item.Product = product
	return &item, nil
}

// SetQuantity overwrites an item's quantity; zero or less deletes it. The
// item must belong to the caller's cart.
func SetQuantity(db *gorm.DB, owner models.CartOwner, itemID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := owner.Scope(db).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if quantity <= 0 {
		if err := db.Delete(&item).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes an item from the caller's cart. Deleting an already
// absent item is not an error.
func RemoveItem(db *gorm.DB, owner models.CartOwner, itemID uint) error {
	return owner.Scope(db).Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

// Items loads the owner's cart with products and their promotions, ready
// for pricing.
func Items(db *gorm.DB, owner models.CartOwner) ([]models.CartItem, error) {
	var items []models.CartItem
	err := owner.Scope(db).
		Preload("Product").
		Preload("Product.Sales").
		Order("added_at ASC").
		Find(&items).Error
	return items, err
}

// Clear empties the owner's cart.
func Clear(db *gorm.DB, owner models.CartOwner) error {
	return owner.Scope(db).Delete(&models.CartItem{}).Error
}

// -------- Handlers --------

type addItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	// Quantity is deliberately loose: a missing or junk value falls back
	// to 1 instead of failing the add.
	Quantity interface{} `json:"quantity"`
}

func (in addItemInput) quantity() int {
	switch v := in.Quantity.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 1
}

// POST /cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.Owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input addItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddItem(db, owner, input.ProductID, input.quantity())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
				return
			}
			zap.L().Error("failed to add cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

type setQuantityInput struct {
	Quantity int `json:"quantity"`
}

// PUT /cart/items/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.Owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		var input setQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := SetQuantity(db, owner, uint(itemID), input.Quantity)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			zap.L().Error("failed to update cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		if item == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/items/:id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.Owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}
		if err := RemoveItem(db, owner, uint(itemID)); err != nil {
			zap.L().Error("failed to delete cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// GET /cart
func GetCart(db *gorm.DB, policy catalog.SalePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.Owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		items, err := Items(db, owner)
		if err != nil {
			zap.L().Error("failed to fetch cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, pricing.QuoteCart(items, policy))
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.Owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := Clear(db, owner); err != nil {
			zap.L().Error("failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
