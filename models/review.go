package models

import "time"

// Review carries a user's rating for a product. Nothing stops a user from
// reviewing the same product twice; that matches the storefront's current
// behavior.
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Rating    int       `gorm:"not null" json:"rating"`
	Text      string    `json:"text"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}
