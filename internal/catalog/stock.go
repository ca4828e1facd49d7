package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/models"
)

// Stock edit modes.
const (
	StockAdd             = "ADD"
	StockRemove          = "REMOVE"
	StockSet             = "SET"
	StockAlwaysAvailable = "ALWAYS_AVAILABLE"
)

// EditStock applies a guarded stock transition to a product owned by actor.
// ADD and REMOVE are atomic SQL increments guarded in the WHERE clause, so a
// concurrent edit can never push finite stock below zero or touch a product
// that went always-available in between.
func EditStock(db *gorm.DB, actor string, productID uint, mode string, value int) error {
	var product models.Product
	err := db.Take(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if product.Owner != actor {
		return ErrForbidden
	}

	switch mode {
	case StockAdd, StockRemove, StockSet, StockAlwaysAvailable:
	default:
		return ErrUnknownMode
	}
	// SET accepts the sentinel itself as an alias for going always-available;
	// every other negative value is invalid.
	if value < 0 && !(mode == StockSet && value == models.UnlimitedStock) {
		return ErrValue
	}
	if mode == StockRemove && !product.HasUnlimitedStock() && value > product.Stock {
		return ErrValue
	}
	if product.HasUnlimitedStock() && mode != StockSet {
		return ErrUnlimitedStock
	}

	var res *gorm.DB
	switch mode {
	case StockAdd:
		res = db.Model(&models.Product{}).
			Where("id = ? AND stock >= 0", productID).
			UpdateColumn("stock", gorm.Expr("stock + ?", value))
	case StockRemove:
		res = db.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", productID, value).
			UpdateColumn("stock", gorm.Expr("stock - ?", value))
	case StockSet:
		res = db.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumn("stock", value)
	case StockAlwaysAvailable:
		res = db.Model(&models.Product{}).
			Where("id = ? AND stock >= 0", productID).
			UpdateColumn("stock", models.UnlimitedStock)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// The guard lost a race: stock changed between the read and the
		// update. Report it the same way the pre-checks would have.
		if mode == StockRemove {
			return ErrValue
		}
		return ErrUnlimitedStock
	}
	return nil
}
