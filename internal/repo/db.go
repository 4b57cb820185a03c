// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migrations, and catalog provisioning.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stationops/go-supply-backend/internal/domain"
	"github.com/stationops/go-supply-backend/internal/levels"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the three supply tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.ResourceType{},
		&domain.Resource{},
		&domain.StockHistory{},
	)
}

// defaultCatalog lists the resource types provisioned on first boot, one per
// category of the reference deployment.
var defaultCatalog = []struct {
	name     string
	category string
}{
	{"Main Oxygen Tank", levels.CategoryOxygen},
	{"Water Reserve", levels.CategoryWater},
	{"Food Storage", levels.CategoryFood},
	{"Spare Parts Inventory", levels.CategorySpareParts},
}

// SeedCatalog provisions the default resource types when the catalog is empty.
// It is idempotent: a non-empty catalog is left untouched.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.ResourceType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, entry := range defaultCatalog {
		rt := &domain.ResourceType{
			ID:        uuid.NewString(),
			Name:      entry.name,
			Category:  entry.category,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(rt).Error; err != nil {
			return err
		}
	}
	return nil
}
