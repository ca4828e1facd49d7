package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osama1403/multimartserver/models"
)

// Rating values are bounded to the star scale.
const (
	MinRating = 0
	MaxRating = 5
)

// RateProduct records buyer's rating of a product. The caller must have a
// Delivered order containing the product. A repeat rating updates the existing
// row and adjusts the product aggregate by the signed delta; a first rating
// inserts the row and increments both aggregates. Everything runs in one
// transaction keyed on the (user, product) unique index.
func RateProduct(db *gorm.DB, buyer string, productID uint, value int) error {
	if value < MinRating || value > MaxRating {
		return ErrValue
	}

	var delivered int64
	err := db.Model(&models.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.owner = ? AND orders.status = ? AND order_items.product_id = ?",
			buyer, models.OrderStatusDelivered, productID).
		Count(&delivered).Error
	if err != nil {
		return err
	}
	if delivered == 0 {
		return ErrNotEligible
	}

	now := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		var prev models.Rating
		err := tx.Where("user_email = ? AND product_id = ?", buyer, productID).
			Take(&prev).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			rating := models.Rating{
				User:      buyer,
				ProductID: productID,
				Rating:    value,
				Date:      now,
			}
			// A concurrent first rating hits the unique index. DoNothing
			// makes that observable: zero rows affected means the row landed
			// after the read above, so this is a repeat rating after all and
			// must go through the delta path below, not the count increment.
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_email"}, {Name: "product_id"}},
				DoNothing: true,
			}).Create(&rating)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				return tx.Model(&models.Product{}).
					Where("id = ?", productID).
					UpdateColumns(map[string]interface{}{
						"total_rating":       gorm.Expr("total_rating + ?", value),
						"total_rating_count": gorm.Expr("total_rating_count + 1"),
					}).Error
			}
			err = tx.Where("user_email = ? AND product_id = ?", buyer, productID).
				Take(&prev).Error
		}
		if err != nil {
			return err
		}

		delta := value - prev.Rating
		err = tx.Model(&prev).UpdateColumns(map[string]interface{}{
			"rating": value,
			"date":   now,
		}).Error
		if err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumn("total_rating", gorm.Expr("total_rating + ?", delta)).Error
	})
}
