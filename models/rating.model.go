package models

import (
	"time"
)

// Rating records a single user's rating of a product. The (User, ProductID)
// pair is unique; a second submission updates the row in place.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User      string    `gorm:"column:user_email;size:100;uniqueIndex:idx_user_product;not null" json:"user"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null" json:"productId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Date      time.Time `json:"date"`
}
