// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/stationops/go-supply-backend/internal/domain"
)

// ResourcesStats returns aggregate metadata for the tracked resource set: the
// total number of rows and the maximum UpdatedAt timestamp among those rows.
//
// When nothing is tracked yet, the returned count is 0 and maxUpdatedAt is nil.
//
// Return values:
//   - count:        total state rows
//   - maxUpdatedAt: pointer to the greatest UpdatedAt, or nil if no rows
//   - err:          database error, if any
func ResourcesStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Resource{})

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// HistoryStats returns aggregate metadata for one type's history: the total
// number of samples and the newest CreatedAt among them.
//
// When there is no history yet, the returned count is 0 and newest is nil.
//
// Return values:
//   - count:  total samples for typeID
//   - newest: pointer to the greatest CreatedAt, or nil if no rows
//   - err:    database error, if any
func HistoryStats(ctx context.Context, db *gorm.DB, typeID string) (count int64, newest *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.StockHistory{}).Where("resource_type_id = ?", typeID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
