// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the catalog
// (ResourceType) and the current-state records (Resource).
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience). "Not found" is an
//     expected outcome; callers translate it, it is never panicked on.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.ResourceService) which enforces business rules such as
// quantity validation, the one-state-per-type invariant, and the atomic
// update+history transaction.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stationops/go-supply-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListResourceTypes returns the full catalog ordered by creation time.
func ListResourceTypes(ctx context.Context, db *gorm.DB) ([]domain.ResourceType, error) {
	var out []domain.ResourceType
	err := db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// GetResourceType fetches a catalog entry by ID, or ErrNotFound if missing.
func GetResourceType(ctx context.Context, db *gorm.DB, id string) (*domain.ResourceType, error) {
	var rt domain.ResourceType
	if err := db.WithContext(ctx).Where("id = ?", id).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// ListResources returns all current-state rows with their catalog entry
// preloaded, ordered deterministically (CreatedAt ASC, ID ASC).
func ListResources(ctx context.Context, db *gorm.DB) ([]domain.Resource, error) {
	var out []domain.Resource
	err := db.WithContext(ctx).
		Preload("ResourceType").
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListResourcesByCategory returns current-state rows whose catalog entry has
// the given category, ordered deterministically. Category validity is the
// caller's concern; an unknown category simply yields an empty result here.
func ListResourcesByCategory(ctx context.Context, db *gorm.DB, category string) ([]domain.Resource, error) {
	var out []domain.Resource
	err := db.WithContext(ctx).
		Preload("ResourceType").
		Joins("JOIN resource_types ON resource_types.id = resources.resource_type_id").
		Where("resource_types.category = ?", category).
		Order("resources.created_at ASC, resources.id ASC").
		Find(&out).Error
	return out, err
}

// GetResource fetches a single state row by ID with its catalog entry,
// or ErrNotFound if missing.
func GetResource(ctx context.Context, db *gorm.DB, id string) (*domain.Resource, error) {
	var r domain.Resource
	err := db.WithContext(ctx).
		Preload("ResourceType").
		Where("id = ?", id).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetResourceByTypeID fetches the state row referencing a catalog entry,
// or ErrNotFound when the type is currently untracked.
func GetResourceByTypeID(ctx context.Context, db *gorm.DB, typeID string) (*domain.Resource, error) {
	var r domain.Resource
	err := db.WithContext(ctx).
		Preload("ResourceType").
		Where("resource_type_id = ?", typeID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResource inserts a new state row for typeID with the given quantity.
// The row ID is a randomly generated UUID, and CreatedAt is set to UTC.
// A second state for the same type violates the ux_resource_type unique index
// and surfaces as a DB error for the service layer to map to a conflict.
func CreateResource(ctx context.Context, db *gorm.DB, typeID string, quantity float64) (*domain.Resource, error) {
	r := &domain.Resource{
		ID:             uuid.NewString(),
		Quantity:       quantity,
		ResourceTypeID: typeID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateResourceQuantity overwrites the quantity of a state row. If no rows
// are affected (row missing), it returns ErrNotFound. The handle may be a
// transaction; the atomic update+history append in the service layer relies
// on that.
func UpdateResourceQuantity(db *gorm.DB, id string, quantity float64) error {
	res := db.
		Model(&domain.Resource{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountResources returns the number of tracked state rows.
func CountResources(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Resource{}).Count(&total).Error
	return total, err
}
