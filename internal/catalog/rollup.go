package catalog

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/models"
)

// SellerRollup loads one of the seller's products together with the per-status
// rollup of ordered quantities. Only products owned by ownerEmail resolve;
// anything else is ErrNotFound. Order statuses outside the known set are
// accumulated into the Other bucket, never dropped.
func SellerRollup(db *gorm.DB, ownerEmail string, productID uint) (*models.Product, models.OrdersCount, error) {
	var rollup models.OrdersCount

	var product models.Product
	err := db.Select("*, "+rateExpr+" AS rate").
		Where("owner = ?", ownerEmail).
		Take(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rollup, ErrNotFound
	}
	if err != nil {
		return nil, rollup, err
	}

	var rows []struct {
		Status string
		Count  int
	}
	err = db.Model(&models.OrderItem{}).
		Select("orders.status AS status, SUM(order_items.count) AS count").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ?", productID).
		Group("orders.status").
		Scan(&rows).Error
	if err != nil {
		return nil, rollup, err
	}

	for _, row := range rows {
		rollup.Total += row.Count
		switch strings.ToLower(row.Status) {
		case "pending":
			rollup.Pending += row.Count
		case "processing":
			rollup.Processing += row.Count
		case "shipping":
			rollup.Shipping += row.Count
		case "delivered":
			rollup.Delivered += row.Count
		default:
			rollup.Other += row.Count
		}
	}

	return &product, rollup, nil
}
