package database

import (
	"fmt"

	"gorm.io/gorm"

	"paytrack-backend/models"
)

// AutoMigrate applies (idempotent) schema migrations: tables, columns and
// indexes from the model tags, including the positive-money CHECK
// constraints declared on invoices.total and payments.amount.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Invoice{},
		&models.Payment{},
		&models.IdempotencyKey{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}
