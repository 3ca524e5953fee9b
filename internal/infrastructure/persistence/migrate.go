package persistence

import (
	"github.com/distribev/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persistence model
func AutoMigrate(db *gorm.DB) error {
	if err := models.AutoMigratePartner(db); err != nil {
		return err
	}
	return models.AutoMigrateLedger(db)
}
