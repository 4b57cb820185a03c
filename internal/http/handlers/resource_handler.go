// Resource HTTP handlers.
//
// This file exposes REST endpoints for the tracked supply resources:
//   - GET  /resources                        (list, enriched, ETag support)
//   - GET  /resources/:id                    (get one)
//   - GET  /resources/category/:category     (filter by category)
//   - GET  /resources/alerts                 (critical only)
//   - POST /resources                        (start tracking a type)
//   - PUT  /resources/:id/update-quantity    (atomic update + history append)
//   - GET  /resources/data                   (catalog)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stationops/go-supply-backend/internal/domain"
	"github.com/stationops/go-supply-backend/internal/repo"
	"github.com/stationops/go-supply-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ResourceService defines resource state operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ResourceService interface {
	// List returns every tracked resource as an enriched view.
	List(ctx context.Context) ([]domain.EnrichedResource, error)
	// GetByID returns one enriched view by state id.
	GetByID(ctx context.Context, id string) (*domain.EnrichedResource, error)
	// GetByTypeID returns the enriched view tied to a resource type.
	GetByTypeID(ctx context.Context, typeID string) (*domain.EnrichedResource, error)
	// ListByCategory filters enriched views by catalog category.
	ListByCategory(ctx context.Context, category string) ([]domain.EnrichedResource, error)
	// ListCritical returns the views whose derived status is critical.
	ListCritical(ctx context.Context) ([]domain.EnrichedResource, error)
	// Catalog returns every resource type.
	Catalog(ctx context.Context) ([]domain.ResourceType, error)
	// Create starts tracking a resource type with an initial quantity.
	Create(ctx context.Context, typeID string, quantity float64) (*domain.EnrichedResource, error)
	// UpdateQuantity atomically overwrites a quantity and appends history.
	UpdateQuantity(ctx context.Context, id string, quantity float64) (*domain.EnrichedResource, error)
}

// HistoryService defines ledger queries and trend statistics.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type HistoryService interface {
	// ForType returns up to limit samples for a resource type, newest first.
	ForType(ctx context.Context, typeID string, limit int) ([]domain.StockHistory, error)
	// Recent returns samples across all types within the last minutes,
	// together with the window start.
	Recent(ctx context.Context, sinceMinutes int) ([]domain.StockHistory, time.Time, error)
	// Stats computes the trailing-24h trend statistics for a type.
	Stats(ctx context.Context, typeID string) (*services.TrendStats, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for resources, history, and the event stream.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	resSvc  ResourceService
	histSvc HistoryService
	hub     StreamHub
}

// New constructs and returns a Handlers instance bound to the given services.
func New(resSvc ResourceService, histSvc HistoryService, hub StreamHub) *Handlers {
	return &Handlers{resSvc: resSvc, histSvc: histSvc, hub: hub}
}

//
// DTOs
//

// CreateResourceRequest is the JSON payload for starting to track a type.
type CreateResourceRequest struct {
	// ResourceTypeID references a catalog entry.
	ResourceTypeID string `json:"resourceTypeId" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// Quantity is the initial stock level (>= 0). A pointer distinguishes
	// zero from absent.
	Quantity *float64 `json:"quantity" example:"15000"`
}

// UpdateQuantityRequest is the JSON payload for a quantity update.
type UpdateQuantityRequest struct {
	// Quantity is the new stock level (>= 0). A pointer distinguishes zero
	// from absent.
	Quantity *float64 `json:"quantity" example:"4000"`
}

// ResourceResponse wraps a single enriched resource.
type ResourceResponse struct {
	Resource domain.EnrichedResource `json:"resource"`
}

// ResourcesResponse wraps an enriched resource list.
type ResourcesResponse struct {
	Resources []domain.EnrichedResource `json:"resources"`
}

// AlertsResponse wraps the critical subset with its count.
type AlertsResponse struct {
	Resources []domain.EnrichedResource `json:"resources"`
	Count     int                       `json:"count"`
}

// CatalogResponse wraps the resource type catalog.
type CatalogResponse struct {
	Data  []domain.ResourceType `json:"data"`
	Count int                   `json:"count"`
}

//
// Handlers
//

// ListResources godoc
// @ID          listResources
// @Summary     List all tracked resources
// @Description Returns every tracked resource enriched with thresholds and status. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Resources
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {object} handlers.ResourcesResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources [get]
func (h *Handlers) ListResources(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.resSvc.(*services.ResourceService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.ResourcesStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"resources:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	list, err := h.resSvc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ResourcesResponse{Resources: list})
}

// GetResource godoc
// @ID          getResource
// @Summary     Get one resource
// @Description Returns a single tracked resource by state id, enriched with thresholds and status.
// @Tags        Resources
// @Produce     json
//
// @Param       id  path  string  true  "Resource ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.ResourceResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Resource not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources/{id} [get]
func (h *Handlers) GetResource(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "resource id must be a UUID")
		return
	}

	res, err := h.resSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrResourceNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "resource not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ResourceResponse{Resource: *res})
}

// ListByCategory godoc
// @ID          listResourcesByCategory
// @Summary     List resources by category
// @Description Returns tracked resources whose catalog entry matches the category.
// @Tags        Resources
// @Produce     json
//
// @Param       category  path  string  true  "Category"  Enums(oxygen, water, food, spare_parts)
//
// @Success     200  {object} handlers.ResourcesResponse
// @Failure     400  {object} handlers.ErrorResponse "Unknown category"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources/category/{category} [get]
func (h *Handlers) ListByCategory(c *gin.Context) {
	list, err := h.resSvc.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			fail(c, http.StatusBadRequest, ErrCodeInvalidCategory, "unknown resource category")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ResourcesResponse{Resources: list})
}

// Alerts godoc
// @ID          listResourceAlerts
// @Summary     List critical resources
// @Description Returns the tracked resources whose derived status is critical.
// @Tags        Resources
// @Produce     json
//
// @Success     200  {object} handlers.AlertsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources/alerts [get]
func (h *Handlers) Alerts(c *gin.Context) {
	list, err := h.resSvc.ListCritical(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, AlertsResponse{Resources: list, Count: len(list)})
}

// Catalog godoc
// @ID          listResourceTypes
// @Summary     List the resource type catalog
// @Description Returns every provisioned resource type.
// @Tags        Resources
// @Produce     json
//
// @Success     200  {object} handlers.CatalogResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources/data [get]
func (h *Handlers) Catalog(c *gin.Context) {
	types, err := h.resSvc.Catalog(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if types == nil {
		types = []domain.ResourceType{}
	}
	ok(c, http.StatusOK, CatalogResponse{Data: types, Count: len(types)})
}

// CreateResource godoc
// @ID          createResource
// @Summary     Start tracking a resource type
// @Description Creates the current-quantity record for a resource type. At most one record may exist per type.
// @Tags        Resources
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateResourceRequest  true  "Create payload"
//
// @Success     201  {object} handlers.ResourceResponse
// @Failure     400  {object} handlers.ErrorResponse "Missing field or invalid quantity"
// @Failure     404  {object} handlers.ErrorResponse "Resource type not found"
// @Failure     409  {object} handlers.ErrorResponse "Type already tracked"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources [post]
func (h *Handlers) CreateResource(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ResourceTypeID) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "resourceTypeId is required")
		return
	}
	if req.Quantity == nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidQuantity, "quantity is required")
		return
	}

	res, err := h.resSvc.Create(c.Request.Context(), req.ResourceTypeID, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingTypeID):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrInvalidQuantity):
			fail(c, http.StatusBadRequest, ErrCodeInvalidQuantity, err.Error())
		case errors.Is(err, services.ErrTypeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
		case errors.Is(err, services.ErrResourceExists):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, ResourceResponse{Resource: *res})
}

// UpdateQuantity godoc
// @ID          updateResourceQuantity
// @Summary     Update a resource quantity
// @Description Overwrites the current quantity and appends one history sample atomically, then broadcasts the new state to connected listeners.
// @Tags        Resources
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Resource ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateQuantityRequest  true  "New quantity"
//
// @Success     200  {object} handlers.ResourceResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid quantity"
// @Failure     404  {object} handlers.ErrorResponse "Resource not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources/{id}/update-quantity [put]
func (h *Handlers) UpdateQuantity(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "resource id must be a UUID")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidQuantity, "quantity is required")
		return
	}

	res, err := h.resSvc.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			fail(c, http.StatusBadRequest, ErrCodeInvalidQuantity, err.Error())
		case errors.Is(err, services.ErrResourceNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "resource not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, ResourceResponse{Resource: *res})
}
