package config

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/models"
	"github.com/osama1403/multimartserver/utils"
)

// SeedUsers creates a buyer and a seller account for local development.
func SeedUsers(db *gorm.DB) {
	log.Println("Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Email:     "buyer@example.com",
			Password:  password,
			FirstName: "Buyer",
			LastName:  "One",
		},
		{
			Email:    "seller@example.com",
			Password: password,
			IsSeller: true,
			ShopName: "Example Shop",
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&user).Error; err != nil {
				log.Printf("Failed to seed user %s: %v", user.Email, err)
			} else {
				log.Printf("User seeded: %s (ID: %d)", user.Email, user.ID)
			}
		} else if err == nil {
			log.Printf("User already exists: %s", user.Email)
		}
	}
}

// SeedProducts creates a few products owned by the seeded seller.
func SeedProducts(db *gorm.DB) {
	log.Println("Seeding products...")

	products := []models.Product{
		{
			Owner:      "seller@example.com",
			Name:       "Cotton T-Shirt",
			Price:      14.99,
			Stock:      120,
			Categories: []string{"clothing"},
			Date:       time.Now(),
		},
		{
			Owner:      "seller@example.com",
			Name:       "Ceramic Mug",
			Price:      8.5,
			Stock:      models.UnlimitedStock,
			Categories: []string{"home", "kitchen"},
			Date:       time.Now(),
		},
	}

	for _, product := range products {
		var existing models.Product
		err := db.Where("owner = ? AND name = ?", product.Owner, product.Name).First(&existing).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			for _, cat := range product.Categories {
				row := models.ProductCategory{ProductID: product.ID, Category: cat}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			log.Printf("Failed to seed product %s: %v", product.Name, err)
		}
	}
}
