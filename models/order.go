package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	// OrderStatusNew is the initial state. It is transient: checkout
	// transitions the order to processing inside the same transaction.
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

// orderFlow is the allowed-transition table:
// new -> processing -> paid -> shipped, processing -> cancelled.
// Anything else is undefined and fails.
var orderFlow = map[OrderStatus][]OrderStatus{
	OrderStatusNew:        {OrderStatusProcessing},
	OrderStatusProcessing: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusShipped},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case OrderStatusNew:
		return OrderStatusNew, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusPaid:
		return OrderStatusPaid, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

type Order struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderRef  string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID    *uint           `json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	FullName  string          `gorm:"not null" json:"full_name"`
	Address   string          `gorm:"not null" json:"address"`
	Phone     string          `gorm:"not null" json:"phone"`
	Status    OrderStatus     `gorm:"type:VARCHAR(20);default:'new'" json:"status"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransitionTo enforces the status machine.
func (o *Order) TransitionTo(next OrderStatus) error {
	for _, allowed := range orderFlow[o.Status] {
		if allowed == next {
			o.Status = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
}

// OrderItem is a frozen snapshot taken at purchase time. Price,
// OriginalPrice and DiscountPercent never change after creation, whatever
// happens to the catalog later.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"-"`
	OrderID         uint            `gorm:"index;not null" json:"-"`
	ProductID       *uint           `json:"product_id"`
	Product         *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	Title           string          `json:"title"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"original_price"`
	DiscountPercent int             `gorm:"not null;default:0" json:"discount_percent"`
	Quantity        int             `gorm:"not null;default:1" json:"quantity"`
}

// Subtotal is price x quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
