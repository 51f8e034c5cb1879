package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	cartControllers "github.com/4vald/Shop-Project-EKEB/controllers/cart"
	"github.com/4vald/Shop-Project-EKEB/middleware"
	"github.com/4vald/Shop-Project-EKEB/models"
	"github.com/4vald/Shop-Project-EKEB/pkg/session"
	"github.com/4vald/Shop-Project-EKEB/pricing"
)

// -------- Request Structs --------

type CheckoutRequest struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Errors --------

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrMissingFields = errors.New("full name, address and phone are required")
)

// -------- Helpers --------

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// Checkout freezes the user's cart into an order. Everything happens in one
// transaction: order creation, item snapshots, the new->processing
// transition and the cart clear either all land or none do. Stock is not
// touched; there is no inventory reservation here.
func Checkout(db *gorm.DB, userID uint, req CheckoutRequest, policy catalog.SalePolicy) (*models.Order, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Address = strings.TrimSpace(req.Address)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.FullName == "" || req.Address == "" || req.Phone == "" {
		return nil, ErrMissingFields
	}

	owner := models.UserOwner(userID)
	items, err := cartControllers.Items(db, owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// Prices are resolved once, here. Later catalog edits never reach the
	// order items.
	quote := pricing.QuoteCart(items, policy)

	orderItems := make([]models.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		productID := line.ProductID
		orderItems = append(orderItems, models.OrderItem{
			ProductID:       &productID,
			Title:           line.Title,
			Price:           line.UnitPrice,
			OriginalPrice:   line.UnitOriginal,
			DiscountPercent: line.DiscountPercent,
			Quantity:        line.Quantity,
		})
	}

	order := models.Order{
		OrderRef: generateOrderRef(),
		UserID:   &userID,
		FullName: req.FullName,
		Address:  req.Address,
		Phone:    req.Phone,
		Status:   models.OrderStatusNew,
		Total:    quote.Total,
		Items:    orderItems,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		// new is the true initial state; checkout immediately moves the
		// order along.
		if err := order.TransitionTo(models.OrderStatusProcessing); err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", order.Status).Error; err != nil {
			return err
		}
		return owner.Scope(tx).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ConfirmPayment moves processing -> paid. Confirming an already paid order
// is a no-op; any other state is an undefined transition and fails.
func ConfirmPayment(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusPaid {
		return &order, nil
	}
	if err := order.TransitionTo(models.OrderStatusPaid); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", order.Status).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /checkout (authenticated users only)
func CheckoutHandler(db *gorm.DB, sessions session.Store, policy catalog.SalePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to place an order"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := Checkout(db, userID, req, policy)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				zap.L().Error("checkout failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		// Remember the order for the payment-confirmation redirect. Losing
		// this is not fatal: the order itself is already committed.
		owner := models.UserOwner(userID)
		if err := sessions.SetLastOrder(c.Request.Context(), owner.Key(), order.ID); err != nil {
			zap.L().Warn("failed to store last order id", zap.Error(err))
		}

		c.JSON(http.StatusCreated, order)
	}
}

// POST /payment/confirm
//
// Simulated payment success page: flips the identity's last order from
// processing to paid.
func ConfirmPaymentHandler(db *gorm.DB, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.Owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID, found, err := sessions.LastOrder(c.Request.Context(), owner.Key())
		if err != nil {
			zap.L().Error("failed to read last order id", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "No recent order to confirm"})
			return
		}

		order, err := ConfirmPayment(db, orderID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case errors.Is(err, models.ErrInvalidTransition):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				zap.L().Error("payment confirmation failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
			}
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders
//
// Users see their full history, newest first. Guests only ever see the last
// order their session created.
func GetMyOrdersHandler(db *gorm.DB, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := middleware.Owner(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if owner.UserID != nil {
			var orders []models.Order
			if err := db.
				Where("user_id = ?", *owner.UserID).
				Preload("Items").
				Order("created_at DESC").
				Find(&orders).Error; err != nil {
				zap.L().Error("failed to fetch orders", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
				return
			}
			c.JSON(http.StatusOK, orders)
			return
		}

		orderID, found, err := sessions.LastOrder(c.Request.Context(), owner.Key())
		if err != nil || !found {
			c.JSON(http.StatusOK, []models.Order{})
			return
		}
		var order models.Order
		if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
			c.JSON(http.StatusOK, []models.Order{})
			return
		}
		c.JSON(http.StatusOK, []models.Order{order})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:id/status
//
// Administrative transitions (shipped, cancelled) go through the same
// status machine as everything else.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, uint(orderID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := order.TransitionTo(newStatus); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", order.Status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
