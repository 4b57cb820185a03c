// Package domain defines the persistence models for the supply tracker:
// resource types (catalog), resource states (current quantities), and stock
// history samples. These types are mapped with GORM and form the core data
// layer of the application.
package domain

import (
	"time"

	"github.com/stationops/go-supply-backend/internal/levels"
)

// Change kinds recorded on stock history rows. Quantity updates record the
// direction relative to the prior value; the periodic snapshot records the
// dedicated "snapshot" kind.
const (
	ChangeIncrease = "increase"
	ChangeDecrease = "decrease"
	ChangeUpdate   = "update"
	ChangeSnapshot = "snapshot"
)

// ResourceType is a catalog entry describing a kind of tracked supply
// (e.g. "Main Oxygen Tank", category oxygen). Entries are created at
// provisioning time and never deleted in normal operation.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: human-readable display name.
//   - Category: one of the closed category enumeration (enforced by DB constraint).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type ResourceType struct {
	ID        string    `json:"id"       gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"     gorm:"type:varchar(255);not null"`
	Category  string    `json:"category" gorm:"type:varchar(32);not null;index;check:category IN ('oxygen','water','food','spare_parts')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for ResourceType.
func (ResourceType) TableName() string { return "resource_types" }

// Resource is the single current-quantity record for a resource type. At most
// one Resource exists per ResourceType (unique index); the quantity is the only
// mutable field. Resources are never deleted in normal operation.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Quantity: current stock level, non-negative.
//   - ResourceTypeID: reference to exactly one catalog entry (unique).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - ResourceType: FK association to the catalog entry.
type Resource struct {
	ID             string    `json:"id"               gorm:"type:char(36);primaryKey"`
	Quantity       float64   `json:"quantity"         gorm:"not null;check:quantity >= 0"`
	ResourceTypeID string    `json:"resource_type_id" gorm:"type:char(36);not null;uniqueIndex:ux_resource_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	ResourceType ResourceType `json:"resource_type" gorm:"foreignKey:ResourceTypeID;references:ID;constraint:OnUpdate:CASCADE"`
}

// TableName returns the database table name for Resource.
func (Resource) TableName() string { return "resources" }

// StockHistory is one immutable timestamped quantity sample. Rows reference the
// resource *type*, not the state record, so history survives a state record
// being recreated; a sample whose type currently has no Resource is valid.
// Rows are appended by quantity updates and by the periodic snapshot, and are
// deleted only by the retention sweep.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Stock: quantity value at the time of recording.
//   - ResourceTypeID: catalog reference (indexed; deliberately not a FK to resources).
//   - ChangeKind: increase/decrease/update for explicit updates, snapshot for
//     scheduled samples (enforced by DB constraint).
//   - CreatedAt: insert timestamp, immutable; ordering key (ties by insert order).
type StockHistory struct {
	ID             string    `json:"id"               gorm:"type:char(36);primaryKey"`
	Stock          float64   `json:"stock"            gorm:"not null"`
	ResourceTypeID string    `json:"resource_type_id" gorm:"type:char(36);not null;index:idx_history_type,priority:1"`
	ChangeKind     string    `json:"change_kind"      gorm:"type:varchar(16);not null;check:change_kind IN ('increase','decrease','update','snapshot')"`
	CreatedAt      time.Time `json:"created_at"       gorm:"index:idx_history_type,priority:2;index:idx_history_created"`
}

// TableName returns the database table name for StockHistory.
func (StockHistory) TableName() string { return "stock_history" }

// EnrichedResource is the derived read view: the current state joined with its
// catalog entry, the category threshold policy, and the computed status band.
// It is recomputed on every read and never persisted, so the thresholds always
// reflect the current policy.
type EnrichedResource struct {
	Resource
	Levels levels.Levels `json:"levels"`
	Status string        `json:"status"`
}

// Enrich builds the derived view for a resource using the supplied thresholds.
func Enrich(r Resource, l levels.Levels) EnrichedResource {
	return EnrichedResource{
		Resource: r,
		Levels:   l,
		Status:   levels.DeriveStatus(r.Quantity, l),
	}
}
