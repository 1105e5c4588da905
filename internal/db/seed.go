package db

import (
	"errors"
	"fmt"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"gorm.io/gorm"
)

// DefaultShop is the profile used until an admin edits it.
var DefaultShop = models.ShopDetails{
	ID:      models.ShopDetailsID,
	Name:    "SmartTax POS",
	Address: "123 Main Street, City, Country",
	Phone:   "+1 234 567 8900",
	Email:   "contact@smarttax.local",
	TaxID:   "GSTIN123456789",
}

// DemoCustomers are present on every fresh start.
var DemoCustomers = []models.Customer{
	{ID: "1", Name: "Sarah Johnson", Email: "sarah.j@example.com", Phone: "+1 (555) 123-4567", Address: "123 Fake Street, CA", Points: 450},
	{ID: "2", Name: "Michael Chen", Email: "m.chen@example.com", Phone: "+1 (555) 987-6543", Address: "456 Test Ave, NY", Points: 120},
	{ID: "3", Name: "Emily Davis", Email: "emily.d@example.com", Phone: "+1 (555) 456-7890", Address: "789 Demo Blvd, TX", Points: 890},
}

// Seed inserts the shop profile, the demo customers and the catalog.
// Rows that already exist are left alone, so Seed can run more than once.
func Seed(db *gorm.DB, products []models.Product) error {
	var shop models.ShopDetails
	if err := db.First(&shop, models.ShopDetailsID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		s := DefaultShop
		if err := db.Create(&s).Error; err != nil {
			return fmt.Errorf("seed shop: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("seed shop: %w", err)
	}

	for _, c := range DemoCustomers {
		var existing models.Customer
		if err := db.Where("id = ?", c.ID).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			c := c
			if err := db.Create(&c).Error; err != nil {
				return fmt.Errorf("seed customer %s: %w", c.ID, err)
			}
		}
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count == 0 && len(products) > 0 {
		rows := make([]models.Product, len(products))
		copy(rows, products)
		if err := db.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
	}
	return nil
}
