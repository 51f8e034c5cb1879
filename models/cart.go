package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// CartItem belongs to exactly one of a registered user or an anonymous
// session key, never both. At most one row exists per (owner, product).
type CartItem struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uint    `gorm:"uniqueIndex:idx_cart_user_product" json:"-"`
	SessionKey *string  `gorm:"size:64;uniqueIndex:idx_cart_session_product" json:"-"`
	ProductID  uint     `gorm:"uniqueIndex:idx_cart_user_product;uniqueIndex:idx_cart_session_product;not null" json:"product_id"`
	Product    Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity   int      `gorm:"not null;default:1" json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
}

// CartOwner is the identity a cart is keyed by. It is threaded explicitly
// into every cart and order operation instead of being read from ambient
// request state.
type CartOwner struct {
	UserID     *uint
	SessionKey string
}

func UserOwner(userID uint) CartOwner {
	return CartOwner{UserID: &userID}
}

func GuestOwner(sessionKey string) CartOwner {
	return CartOwner{SessionKey: sessionKey}
}

// Key is the identity string used for session-scoped storage.
func (o CartOwner) Key() string {
	if o.UserID != nil {
		return "user:" + strconv.FormatUint(uint64(*o.UserID), 10)
	}
	return "guest:" + o.SessionKey
}

// Scope narrows a cart item query to this owner.
func (o CartOwner) Scope(db *gorm.DB) *gorm.DB {
	if o.UserID != nil {
		return db.Where("user_id = ?", *o.UserID)
	}
	return db.Where("session_key = ?", o.SessionKey)
}

// Fill stamps the owner onto a new cart item.
func (o CartOwner) Fill(item *CartItem) {
	if o.UserID != nil {
		item.UserID = o.UserID
		return
	}
	key := o.SessionKey
	item.SessionKey = &key
}
