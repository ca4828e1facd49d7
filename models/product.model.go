package models

import (
	"time"
)

// UnlimitedStock is the persisted sentinel for products that are always
// available regardless of remaining quantity.
const UnlimitedStock = -1

type Product struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	Owner            string            `gorm:"size:100;index;not null" json:"owner"`
	Name             string            `gorm:"size:255;not null" json:"name"`
	Price            float64           `gorm:"not null" json:"price"`
	Stock            int               `json:"stock"`
	Categories       []string          `gorm:"serializer:json" json:"categories"`
	Specifications   map[string]string `gorm:"serializer:json" json:"specifications"`
	Description      string            `gorm:"type:text" json:"description"`
	Customizations   map[string]string `gorm:"serializer:json" json:"customizations"`
	Images           []string          `gorm:"serializer:json" json:"images"`
	Date             time.Time         `json:"date"`
	TotalRatingCount int               `gorm:"default:0" json:"totalRatingCount"`
	TotalRating      int               `gorm:"default:0" json:"totalRating"`

	// Rate is derived from TotalRating/TotalRatingCount at query time and is
	// never written back to the row.
	Rate float64 `gorm:"->;-:migration" json:"rate"`
}

// HasUnlimitedStock reports whether the product carries the always-available
// sentinel instead of a real quantity.
func (p *Product) HasUnlimitedStock() bool {
	return p.Stock < 0
}

// ProductCategory is a denormalized index row used for category filtering.
// Rows are written once at product creation; products are never deleted and
// categories never change afterwards, so the index cannot drift.
type ProductCategory struct {
	ProductID uint   `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Category  string `gorm:"primaryKey;size:100" json:"category"`
}
