// Package services – ResourceService
//
// This file implements ResourceService, the application-level component that
// owns the current-quantity records. It validates inputs before touching
// storage, enforces the one-state-per-type invariant, performs the atomic
// quantity-update + history-append transaction, and enriches every read with
// the category threshold policy and derived status.
//
// After a successful quantity update the service pushes the full enriched
// resource list to the injected broadcaster, so connected listeners always see
// a complete snapshot rather than a delta.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// resource and type identifiers.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stationops/go-supply-backend/internal/broadcast"
	"github.com/stationops/go-supply-backend/internal/domain"
	"github.com/stationops/go-supply-backend/internal/levels"
	"github.com/stationops/go-supply-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Broadcaster is the notification contract the service needs: a fan-out
// channel to the connected listeners. It is injected explicitly so the
// service never reaches for ambient global state.
type Broadcaster interface {
	Publish(ev broadcast.Event)
}

// ResourceService coordinates state reads, creation, and the atomic
// quantity-update transaction.
type ResourceService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Hub receives a resources:update event after every committed quantity
	// change. May be nil in contexts without listeners (tests, tools).
	Hub Broadcaster
}

// NewResourceService constructs a ResourceService.
func NewResourceService(db *gorm.DB, hub Broadcaster) *ResourceService {
	return &ResourceService{DB: db, Hub: hub}
}

// List returns every tracked resource as an enriched view.
func (s *ResourceService) List(ctx context.Context) ([]domain.EnrichedResource, error) {
	rows, err := repo.ListResources(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	return enrichAll(rows)
}

// GetByID returns the enriched view for one state record, or
// ErrResourceNotFound when the id does not resolve.
func (s *ResourceService) GetByID(ctx context.Context, id string) (*domain.EnrichedResource, error) {
	r, err := repo.GetResource(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return enrichOne(*r)
}

// GetByTypeID returns the enriched view for the state record tied to a
// resource type, or ErrResourceNotFound when the type has no state yet.
func (s *ResourceService) GetByTypeID(ctx context.Context, typeID string) (*domain.EnrichedResource, error) {
	r, err := repo.GetResourceByTypeID(ctx, s.DB, typeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return enrichOne(*r)
}

// ListByCategory returns enriched views filtered by catalog category.
// A category outside the fixed enumeration yields ErrInvalidCategory before
// storage is touched.
func (s *ResourceService) ListByCategory(ctx context.Context, category string) ([]domain.EnrichedResource, error) {
	category = strings.TrimSpace(category)
	if !levels.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	rows, err := repo.ListResourcesByCategory(ctx, s.DB, category)
	if err != nil {
		return nil, err
	}
	return enrichAll(rows)
}

// ListCritical returns the enriched views whose derived status is critical.
func (s *ResourceService) ListCritical(ctx context.Context) ([]domain.EnrichedResource, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EnrichedResource, 0, len(all))
	for _, e := range all {
		if e.Status == levels.StatusCritical {
			out = append(out, e)
		}
	}
	return out, nil
}

// Catalog returns every resource type.
func (s *ResourceService) Catalog(ctx context.Context) ([]domain.ResourceType, error) {
	return repo.ListResourceTypes(ctx, s.DB)
}

// Create starts tracking a resource type with an initial quantity.
//
// Validation happens before any write: the type reference must be present,
// the quantity non-negative, the type must resolve in the catalog, and the
// type must not already have a state record. The uniqueness invariant is
// additionally guarded by the DB unique index, so a concurrent create loses
// with ErrResourceExists rather than corrupting state.
func (s *ResourceService) Create(ctx context.Context, typeID string, quantity float64) (*domain.EnrichedResource, error) {
	tr := otel.Tracer("services/ResourceService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("resource_type.id", typeID)),
	)
	defer span.End()

	typeID = strings.TrimSpace(typeID)
	if typeID == "" {
		return nil, ErrMissingTypeID
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := repo.GetResourceType(ctx, s.DB, typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}

	// Pre-check for a friendlier error; the unique index is the real guard.
	if _, err := repo.GetResourceByTypeID(ctx, s.DB, typeID); err == nil {
		return nil, ErrResourceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := repo.CreateResource(ctx, s.DB, typeID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, ErrResourceExists
		}
		return nil, err
	}

	// Reload with the catalog entry attached.
	full, err := repo.GetResource(ctx, s.DB, created.ID)
	if err != nil {
		return nil, err
	}
	return enrichOne(*full)
}

// UpdateQuantity overwrites a resource's quantity and appends one history
// sample in a single transaction: both writes commit or neither does, so the
// current record and the ledger can never diverge. The sample's change kind
// records the direction relative to the prior quantity. On success the full
// enriched list is broadcast to listeners.
func (s *ResourceService) UpdateQuantity(ctx context.Context, id string, quantity float64) (*domain.EnrichedResource, error) {
	tr := otel.Tracer("services/ResourceService")
	ctx, span := tr.Start(ctx, "UpdateQuantity",
		trace.WithAttributes(attribute.String("resource.id", id)),
	)
	defer span.End()

	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	current, err := repo.GetResource(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	kind := domain.ChangeUpdate
	switch {
	case quantity > current.Quantity:
		kind = domain.ChangeIncrease
	case quantity < current.Quantity:
		kind = domain.ChangeDecrease
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.UpdateResourceQuantity(tx, id, quantity); err != nil {
			return err
		}
		_, err := repo.AppendHistory(tx, current.ResourceTypeID, quantity, kind)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	updated, err := repo.GetResource(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	enriched, err := enrichOne(*updated)
	if err != nil {
		return nil, err
	}

	s.broadcastUpdate(ctx, time.Now().UTC())
	return enriched, nil
}

// BroadcastSnapshot pushes the current enriched list with the given firing
// timestamp. The snapshot scheduler calls this after its per-resource inserts.
func (s *ResourceService) BroadcastSnapshot(ctx context.Context, firedAt time.Time) error {
	if s.Hub == nil {
		return nil
	}
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	s.Hub.Publish(broadcast.Event{
		Name:    broadcast.EventUpdate,
		Payload: broadcast.UpdatePayload{Resources: list, Timestamp: firedAt},
	})
	return nil
}

// broadcastUpdate publishes the full enriched list; failures to assemble the
// list only cost the notification, never the committed update.
func (s *ResourceService) broadcastUpdate(ctx context.Context, ts time.Time) {
	if s.Hub == nil {
		return
	}
	list, err := s.List(ctx)
	if err != nil {
		return
	}
	s.Hub.Publish(broadcast.Event{
		Name:    broadcast.EventUpdate,
		Payload: broadcast.UpdatePayload{Resources: list, Timestamp: ts},
	})
}

// enrichOne joins one state row with its category policy.
func enrichOne(r domain.Resource) (*domain.EnrichedResource, error) {
	l, err := levels.ForCategory(r.ResourceType.Category)
	if err != nil {
		return nil, err
	}
	e := domain.Enrich(r, l)
	return &e, nil
}

// enrichAll joins state rows with their category policies. Always returns a
// non-nil slice so empty results serialize as [] rather than null.
func enrichAll(rows []domain.Resource) ([]domain.EnrichedResource, error) {
	out := make([]domain.EnrichedResource, 0, len(rows))
	for _, r := range rows {
		e, err := enrichOne(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
