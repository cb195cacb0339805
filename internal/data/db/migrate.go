package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/restkit-backend/internal/domain"
)

// AutoMigrateAll creates or alters tables for every domain model. It is a
// development convenience; production schemas are managed outside the app.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Running auto migration", "models", len(domain.Models()))
	return AutoMigrateAll(s.db)
}
