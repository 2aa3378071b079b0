package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/models"
)

// NewDatabase establishes a connection to the PostgreSQL database and applies
// the schema. The returned handle is constructed once at process start,
// passed to every component that needs it, and closed at shutdown; nothing
// in the codebase reaches for a package-level connection.
func NewDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := OpenDatabase(postgres.Open(cfg.DatabaseURL))
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// OpenDatabase opens a gorm handle for the given dialector. Split out from
// NewDatabase so tests can open sqlite or wrap an existing *sql.DB.
func OpenDatabase(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate applies the schema for all nine tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Store{},
		&models.Billboard{},
		&models.Category{},
		&models.Size{},
		&models.Color{},
		&models.Product{},
		&models.Image{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// CloseDatabase closes the underlying connection pool.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
