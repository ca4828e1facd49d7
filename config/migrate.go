package config

import (
	"log"

	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/models"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductCategory{},
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
	)

	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully...")
	return nil
}
