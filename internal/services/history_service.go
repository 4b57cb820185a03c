// Package services – HistoryService
//
// This file implements HistoryService, which answers queries over the
// append-only stock history ledger: per-type history, recent activity across
// all types, the trailing-24h trend statistics, and the retention purge used
// by the daily sweeper.
//
// History is keyed to the resource *type*, not the state record, so the type
// existence checks here go against the catalog regardless of whether a state
// record currently exists.
package services

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/stationops/go-supply-backend/internal/domain"
	"github.com/stationops/go-supply-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultHistoryLimit bounds per-type history queries when the caller
	// does not supply a limit.
	DefaultHistoryLimit = 100

	// DefaultRecentMinutes is the window for recent-activity queries when the
	// caller does not supply one.
	DefaultRecentMinutes = 60

	// statsWindow is the trailing window the trend statistics are computed over.
	statsWindow = 24 * time.Hour

	// Trend labels.
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"

	// trendThresholdPct is the percentage-change magnitude beyond which the
	// trend stops being "stable".
	trendThresholdPct = 5.0
)

// TrendStats summarizes one type's trailing-24h history window.
type TrendStats struct {
	Average          float64 `json:"average"`
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	Current          float64 `json:"current"`
	FirstValue       float64 `json:"firstValue"`
	PercentageChange float64 `json:"percentageChange"`
	Trend            string  `json:"trend"`
	TotalRecords     int     `json:"totalRecords"`
}

// HistoryService implements the ledger read paths and the retention purge.
type HistoryService struct {
	// DB is the GORM handle used for all ledger queries.
	DB *gorm.DB
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{DB: db}
}

// ForType returns up to limit samples for a resource type, newest first.
// The type must exist in the catalog (independent of whether a state record
// exists); otherwise ErrTypeNotFound. A non-positive limit falls back to
// DefaultHistoryLimit.
func (s *HistoryService) ForType(ctx context.Context, typeID string, limit int) ([]domain.StockHistory, error) {
	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "ForType",
		trace.WithAttributes(
			attribute.String("resource_type.id", typeID),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if _, err := repo.GetResourceType(ctx, s.DB, typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	out, err := repo.ListHistoryForType(ctx, s.DB, typeID, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.StockHistory{}
	}
	return out, nil
}

// Recent returns all samples across every type recorded within the last
// sinceMinutes minutes, newest first. A non-positive window falls back to
// DefaultRecentMinutes. The second return value is the window start.
func (s *HistoryService) Recent(ctx context.Context, sinceMinutes int) ([]domain.StockHistory, time.Time, error) {
	if sinceMinutes <= 0 {
		sinceMinutes = DefaultRecentMinutes
	}
	since := time.Now().UTC().Add(-time.Duration(sinceMinutes) * time.Minute)

	out, err := repo.ListRecentHistory(ctx, s.DB, since)
	if err != nil {
		return nil, since, err
	}
	if out == nil {
		out = []domain.StockHistory{}
	}
	return out, since, nil
}

// Stats computes the trend statistics for one type over the trailing 24-hour
// window. An empty window is not an error: it yields zero-valued stats with a
// stable trend and TotalRecords 0.
func (s *HistoryService) Stats(ctx context.Context, typeID string) (*TrendStats, error) {
	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "Stats",
		trace.WithAttributes(attribute.String("resource_type.id", typeID)),
	)
	defer span.End()

	if _, err := repo.GetResourceType(ctx, s.DB, typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}

	since := time.Now().UTC().Add(-statsWindow)
	window, err := repo.ListHistorySince(ctx, s.DB, typeID, since)
	if err != nil {
		return nil, err
	}
	return computeStats(window), nil
}

// PurgeOlderThan bulk-deletes samples older than the given number of days and
// returns the count removed. Rows exactly at the boundary are retained. Only
// the retention sweeper calls this.
func (s *HistoryService) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return repo.PurgeHistoryOlderThan(ctx, s.DB, cutoff)
}

// computeStats folds an oldest-first window into a TrendStats.
func computeStats(window []domain.StockHistory) *TrendStats {
	if len(window) == 0 {
		return &TrendStats{Trend: TrendStable}
	}

	first := window[0].Stock
	current := window[len(window)-1].Stock
	min, max, sum := first, first, 0.0
	for _, h := range window {
		if h.Stock < min {
			min = h.Stock
		}
		if h.Stock > max {
			max = h.Stock
		}
		sum += h.Stock
	}

	var pct float64
	if first != 0 {
		pct = (current - first) / first * 100
	}
	pct = math.Round(pct*100) / 100

	trend := TrendStable
	switch {
	case pct > trendThresholdPct:
		trend = TrendIncreasing
	case pct < -trendThresholdPct:
		trend = TrendDecreasing
	}

	return &TrendStats{
		Average:          math.Round(sum / float64(len(window))),
		Min:              min,
		Max:              max,
		Current:          current,
		FirstValue:       first,
		PercentageChange: pct,
		Trend:            trend,
		TotalRecords:     len(window),
	}
}
