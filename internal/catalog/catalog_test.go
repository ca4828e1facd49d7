package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/osama1403/multimartserver/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalog_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductCategory{},
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func createProduct(t *testing.T, db *gorm.DB, p models.Product) models.Product {
	t.Helper()

	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	for _, cat := range p.Categories {
		row := models.ProductCategory{ProductID: p.ID, Category: cat}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("Failed to create category row: %v", err)
		}
	}
	return p
}

func createOrder(t *testing.T, db *gorm.DB, owner, status string, items ...models.OrderItem) models.Order {
	t.Helper()

	order := models.Order{Owner: owner, Status: status, Items: items}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	return order
}

func productByID(t *testing.T, db *gorm.DB, id uint) models.Product {
	t.Helper()

	var p models.Product
	if err := db.Take(&p, id).Error; err != nil {
		t.Fatalf("Failed to load product %d: %v", id, err)
	}
	return p
}
