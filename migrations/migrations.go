package migrations

import (
	"fmt"

	"CopiaTrack/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RunMigrations executes every migration the service needs.
func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running migrations...")

	if err := db.AutoMigrate(&models.BackupRecord{}); err != nil {
		return fmt.Errorf("failed to migrate BackupRecord: %w", err)
	}

	logrus.Info("Migrations completed successfully")
	return nil
}
