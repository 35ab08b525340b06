package database

import (
	"fmt"
	"strconv"

	"github.com/ciby9833/xspace-sub002/config"
	"github.com/ciby9833/xspace-sub002/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and migrates the schema. The handle is
// returned to the caller and injected into every service; nothing in the
// core reaches for a package global.
func Connect() (*gorm.DB, error) {
	port, err := strconv.ParseUint(config.ConfigOr("DB_PORT", "5432"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.Config("DB_NAME"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Company{},
		&model.Store{},
		&model.Room{},
		&model.Script{},
		&model.RolePricing{},
		&model.Order{},
		&model.OrderImage{},
		&model.OrderPlayer{},
	)
}
