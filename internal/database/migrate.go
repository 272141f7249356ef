package database

import (
	"fmt"

	"github.com/pageza/calorix/backend/internal/models"
	"gorm.io/gorm"
)

// Models lists every table the application owns.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserProfile{},
		&models.GoalHistory{},
		&models.DailyLog{},
		&models.Notification{},
	}
}

// RunMigrations creates or updates the schema.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// DropAll removes every application table. Used by the migrate command's
// reset flag.
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(Models()...)
}
