package models

import (
	"time"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	FirstName      string `gorm:"size:100" json:"firstName"`
	LastName       string `gorm:"size:100" json:"lastName"`
	Phone          string `gorm:"size:20" json:"phone"`
	Address1       string `gorm:"size:255" json:"address1"`
	Address2       string `gorm:"size:255" json:"address2"`
	ProfilePicture string `json:"profilePicture"`

	// Seller accounts also own products; ShopName is what product detail
	// pages show as the owner summary.
	IsSeller bool   `gorm:"default:false" json:"isSeller"`
	ShopName string `gorm:"size:100" json:"shopName,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerSummary is the minimal seller view embedded in product detail
// responses in place of the raw owner email.
type OwnerSummary struct {
	ID       uint   `json:"id"`
	ShopName string `json:"shopName"`
}
