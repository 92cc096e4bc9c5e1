package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"shopgate/internal/models"
)

// Migrate ensures the payment attempt journal exists.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.PaymentAttempt{}); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
