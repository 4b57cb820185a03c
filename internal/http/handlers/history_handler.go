package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stationops/go-supply-backend/internal/domain"
	"github.com/stationops/go-supply-backend/internal/repo"
	"github.com/stationops/go-supply-backend/internal/services"
	"github.com/stationops/go-supply-backend/internal/utils"
)

// HistoryResponse wraps a history sample list with its count.
type HistoryResponse struct {
	History []domain.StockHistory `json:"history"`
	Count   int                   `json:"count"`
}

// RecentHistoryResponse wraps cross-type samples with the queried window.
type RecentHistoryResponse struct {
	History   []domain.StockHistory `json:"history"`
	Count     int                   `json:"count"`
	TimeRange TimeRange             `json:"timeRange"`
}

// TimeRange describes the half-open window a recent query covered.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// StatsResponse pairs the current resource view with its trend statistics.
type StatsResponse struct {
	ResourceData *domain.EnrichedResource `json:"resourceData"`
	Stats        services.TrendStats      `json:"stats"`
}

// History godoc
// @ID          listResourceHistory
// @Summary     List history for a resource type
// @Description Returns the stock ledger for one resource type, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        History
// @Produce     json
//
// @Param       id     path   string  true   "Resource type ID (UUID)"  format(uuid)
// @Param       limit  query  int     false  "Max samples to return"    default(100)
//
// @Success     200  {object} handlers.HistoryResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Resource type not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources/{id}/history [get]
func (h *Handlers) History(c *gin.Context) {
	ctx := c.Request.Context()

	typeID := c.Param("id")
	if _, err := uuid.Parse(typeID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "resource type id must be a UUID")
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), services.DefaultHistoryLimit)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.histSvc.(*services.HistoryService); ok {
		db = svc.DB
	}
	if db != nil {
		count, newest, err := repo.HistoryStats(ctx, db, typeID)
		if err == nil {
			var ts int64
			if newest != nil {
				ts = newest.Unix()
			}
			etag := fmt.Sprintf(`W/"history:%s:%d:%d:%d"`, typeID, count, ts, limit)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	rows, err := h.histSvc.ForType(ctx, typeID, limit)
	if err != nil {
		if errors.Is(err, services.ErrTypeNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "resource type not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, HistoryResponse{History: rows, Count: len(rows)})
}

// RecentHistory godoc
// @ID          listRecentHistory
// @Summary     List recent history across all types
// @Description Returns samples recorded within the last N minutes for every resource type, newest first.
// @Tags        History
// @Produce     json
//
// @Param       minutes  query  int  false  "Window size in minutes"  default(60)
//
// @Success     200  {object} handlers.RecentHistoryResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources/history/recent [get]
func (h *Handlers) RecentHistory(c *gin.Context) {
	minutes := utils.AtoiDefault(c.Query("minutes"), services.DefaultRecentMinutes)

	rows, since, err := h.histSvc.Recent(c.Request.Context(), minutes)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, RecentHistoryResponse{
		History:   rows,
		Count:     len(rows),
		TimeRange: TimeRange{From: since, To: time.Now().UTC()},
	})
}

// Stats godoc
// @ID          resourceStats
// @Summary     Trend statistics for a resource type
// @Description Computes statistics over the trailing 24 hours of history for one resource type and pairs them with the current state, when one exists.
// @Tags        History
// @Produce     json
//
// @Param       id  path  string  true  "Resource type ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.DataEnvelope{data=handlers.StatsResponse}
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Resource type not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources/{id}/stats [get]
func (h *Handlers) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	typeID := c.Param("id")
	if _, err := uuid.Parse(typeID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "resource type id must be a UUID")
		return
	}

	stats, err := h.histSvc.Stats(ctx, typeID)
	if err != nil {
		if errors.Is(err, services.ErrTypeNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "resource type not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	// The state record is optional: a type can have history without a
	// tracked quantity.
	var resData *domain.EnrichedResource
	if res, err := h.resSvc.GetByTypeID(ctx, typeID); err == nil {
		resData = res
	} else if !errors.Is(err, services.ErrResourceNotFound) {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, DataEnvelope{Data: StatsResponse{ResourceData: resData, Stats: *stats}})
}
