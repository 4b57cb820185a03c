// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the append-only
// stock history ledger.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stationops/go-supply-backend/internal/domain"
)

// AppendHistory inserts one immutable history sample for a resource type.
// The handle may be a transaction; the atomic update+append in the service
// layer passes its tx here.
func AppendHistory(db *gorm.DB, typeID string, stock float64, changeKind string) (*domain.StockHistory, error) {
	h := &domain.StockHistory{
		ID:             uuid.NewString(),
		Stock:          stock,
		ResourceTypeID: typeID,
		ChangeKind:     changeKind,
		CreatedAt:      time.Now().UTC(),
	}
	return h, db.Create(h).Error
}

// ListHistoryForType returns samples for a resource type, newest first,
// bounded to limit when limit > 0. Ties on CreatedAt break by insert order
// (ID as secondary key keeps the ordering deterministic).
func ListHistoryForType(ctx context.Context, db *gorm.DB, typeID string, limit int) ([]domain.StockHistory, error) {
	var out []domain.StockHistory
	q := db.WithContext(ctx).
		Where("resource_type_id = ?", typeID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// ListRecentHistory returns all samples with CreatedAt >= since across every
// resource type, newest first.
func ListRecentHistory(ctx context.Context, db *gorm.DB, since time.Time) ([]domain.StockHistory, error) {
	var out []domain.StockHistory
	err := db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListHistorySince returns samples for one resource type with
// CreatedAt >= since, oldest first. The statistics window walks this order.
func ListHistorySince(ctx context.Context, db *gorm.DB, typeID string, since time.Time) ([]domain.StockHistory, error) {
	var out []domain.StockHistory
	err := db.WithContext(ctx).
		Where("resource_type_id = ? AND created_at >= ?", typeID, since).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CountHistoryForType uses a raw COUNT so a missing table surfaces as an error.
func CountHistoryForType(ctx context.Context, db *gorm.DB, typeID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM stock_history WHERE resource_type_id = ?", typeID).
		Scan(&total).Error
	return total, err
}

// PurgeHistoryOlderThan bulk-deletes samples strictly older than cutoff and
// returns the number of rows removed. A row whose CreatedAt equals the cutoff
// is retained (inclusive-retain boundary).
func PurgeHistoryOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.StockHistory{})
	return res.RowsAffected, res.Error
}
