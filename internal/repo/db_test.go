package repo

import (
	"path/filepath"
	"testing"

	"github.com/stationops/go-supply-backend/internal/domain"
)

func TestOpenSQLite_CreatesAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supply.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	m := db.Migrator()
	for _, tbl := range []any{&domain.ResourceType{}, &domain.Resource{}, &domain.StockHistory{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T after migration", tbl)
		}
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "nope", "supply.db")); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}
