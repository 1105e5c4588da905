package db

import (
	"fmt"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database behind dsn. gorm's own logger only
// prints SQL when debug is set.
func Open(dsn string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate runs AutoMigrate for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ShopDetails{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Setup opens, migrates and seeds in one call.
func Setup(dsn string, debug bool, products []models.Product) (*gorm.DB, error) {
	db, err := Open(dsn, debug)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Seed(db, products); err != nil {
		return nil, err
	}
	return db, nil
}
