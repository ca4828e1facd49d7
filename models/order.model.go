package models

import (
	"time"
)

// Order statuses. These are the buckets the seller rollup understands; any
// other persisted value lands in the rollup's "other" bucket.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipping   = "Shipping"
	OrderStatusDelivered  = "Delivered"
)

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Owner  string `gorm:"size:100;index;not null" json:"owner"`
	Status string `gorm:"size:20;default:'Pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"products"`
}

// OrderItem is one product line inside an order.
type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	OrderID   uint `gorm:"index;not null" json:"-"`
	ProductID uint `gorm:"index;not null" json:"id"`
	Count     int  `gorm:"not null" json:"count"`
}
