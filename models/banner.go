package models

// HeroBanner is pure presentation: the storefront carousel, ordered by
// DisplayOrder ascending.
type HeroBanner struct {
	ID           uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageURL     string `gorm:"not null" json:"image_url"`
	DisplayOrder int   `gorm:"not null;default:0" json:"display_order"`
	Active       bool  `gorm:"not null;default:true" json:"active"`
	SaleID       *uint `json:"sale_id"`
	Sale         *Sale `gorm:"foreignKey:SaleID;constraint:OnDelete:SET NULL" json:"-"`
}
