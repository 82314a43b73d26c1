package database

import (
	"fmt"
	"time"

	"taskboard-api/internal/logging"
	"taskboard-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the SQLite database at dsn and migrates the schema.
// glebarez/sqlite is a pure Go implementation, so no CGO is required.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.New(logging.Logger, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// InitDB opens the database and stores it in DB.
func InitDB(dsn string) error {
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	DB = db

	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Database connected and migrated (%s)", dsn)
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
