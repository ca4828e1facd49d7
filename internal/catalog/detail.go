package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/models"
)

// Detail loads a single product and resolves its owner into the minimal
// seller summary shown on product pages. A missing product or an owner email
// with no matching seller account both surface as ErrNotFound.
func Detail(db *gorm.DB, productID uint) (*models.Product, *models.OwnerSummary, error) {
	var product models.Product
	err := db.Select("*, "+rateExpr+" AS rate").Take(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var owner models.User
	err = db.Where("email = ? AND is_seller = ?", product.Owner, true).Take(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	return &product, &models.OwnerSummary{ID: owner.ID, ShopName: owner.ShopName}, nil
}

// SellerProducts returns every product owned by the given seller, newest
// first.
func SellerProducts(db *gorm.DB, ownerEmail string) ([]models.Product, error) {
	products := []models.Product{}
	err := db.Model(&models.Product{}).
		Select("*, "+rateExpr+" AS rate").
		Where("owner = ?", ownerEmail).
		Order("date DESC, id").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
