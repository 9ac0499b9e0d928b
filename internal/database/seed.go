// internal/database/seed.go
package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/greeniecart/greeniecart-backend/internal/models"
)

// SeedDevelopmentData populates an empty database with a demo seller and a
// small storefront so the API is browsable right after first boot. It is a
// no-op when any user already exists; never call it in production.
func SeedDevelopmentData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	seller := models.User{
		Email:           "demo.seller@greeniecart.local",
		FirstName:       "Demo",
		LastName:        "Seller",
		Contact:         "09171234567",
		EmailVerifiedAt: &now,
		Address: models.JSONB{
			"house_no": "12",
			"street":   "Mabini St",
			"barangay": "Brgy. San Isidro",
			"city":     "Quezon City",
			"province": "Metro Manila",
			"zip":      "1100",
		},
	}
	if err := seller.SetPassword("DemoSeller1!"); err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	products := []models.Product{
		{
			Name:        "Bamboo Toothbrush",
			Description: "Biodegradable bamboo handle with soft charcoal bristles.",
			Category:    "Personal Care",
			Price:       decimal.NewFromFloat(65.00),
			Stock:       40,
		},
		{
			Name:        "Calamansi Dish Soap Bar",
			Description: "Zero-waste dish soap bar made with local calamansi oil.",
			Category:    "Home",
			Price:       decimal.NewFromFloat(85.00),
			Stock:       25,
		},
		{
			Name:        "Reusable Produce Bags (Set of 5)",
			Description: "Washable mesh bags for market runs, replaces single-use plastic.",
			Category:    "Home",
			Price:       decimal.NewFromFloat(150.00),
			Stock:       15,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&seller).Error; err != nil {
			return fmt.Errorf("failed to seed demo seller: %w", err)
		}
		for i := range products {
			products[i].SellerID = seller.ID
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed demo products: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"seller":   seller.Email,
			"products": len(products),
		}).Info("Seeded development data")
		return nil
	})
}
