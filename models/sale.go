package models

import "time"

// Sale is a promotional discount applied to a set of products. The upper
// bound of DiscountPercent is deliberately unvalidated, matching the admin
// surface it is managed from.
type Sale struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	DiscountPercent int       `gorm:"not null;default:0" json:"discount_percent"`
	Banner          string    `json:"banner"`
	Products        []Product `gorm:"many2many:sale_products" json:"products,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
