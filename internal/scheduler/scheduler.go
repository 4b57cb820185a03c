// Package scheduler runs the two background cadences of the supply tracker:
// the periodic snapshot that samples every current quantity into the history
// ledger, and the daily retention sweep that purges stale samples.
//
// Both cadences are fixed constants of the reference deployment rather than
// runtime configuration. The loops are plain ticker/timer goroutines; a
// process-wide context cancel stops future firings but does not interrupt a
// firing already in flight.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/stationops/go-supply-backend/internal/domain"
	"github.com/stationops/go-supply-backend/internal/repo"
	"github.com/stationops/go-supply-backend/internal/services"
)

const (
	// SnapshotInterval is the fixed cadence of the quantity snapshot.
	SnapshotInterval = 60 * time.Second

	// RetentionDays is the history retention window.
	RetentionDays = 30

	// sweepHour is the local-time hour of the daily retention sweep.
	sweepHour = 3
)

// Scheduler owns the snapshot and sweep loops.
type Scheduler struct {
	DB        *gorm.DB
	Resources *services.ResourceService
	History   *services.HistoryService
	Log       zerolog.Logger

	// Interval overrides SnapshotInterval when positive (tests use this).
	Interval time.Duration
}

// New constructs a Scheduler with the reference cadence.
func New(db *gorm.DB, res *services.ResourceService, hist *services.HistoryService, log zerolog.Logger) *Scheduler {
	return &Scheduler{DB: db, Resources: res, History: hist, Log: log, Interval: SnapshotInterval}
}

// Run starts both loops and returns immediately. Cancelling ctx halts all
// future firings.
func (s *Scheduler) Run(ctx context.Context) {
	go s.snapshotLoop(ctx)
	go s.sweepLoop(ctx)
}

func (s *Scheduler) snapshotLoop(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = SnapshotInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A failed firing is logged and skipped; the next tick is unaffected.
			if err := s.SnapshotOnce(ctx); err != nil {
				s.Log.Error().Err(err).Msg("snapshot firing failed")
			}
		}
	}
}

// SnapshotOnce performs one snapshot firing: it reads every current state row
// and appends one "snapshot" history sample per resource. The inserts are
// deliberately independent, not one cross-resource transaction; a mid-batch
// failure leaves the earlier resources recorded and is logged, not retried.
// With zero tracked resources the firing is a no-op: no inserts, no broadcast.
func (s *Scheduler) SnapshotOnce(ctx context.Context) error {
	firedAt := time.Now().UTC()

	rows, err := repo.ListResources(ctx, s.DB)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	recorded := 0
	for _, r := range rows {
		if _, err := repo.AppendHistory(s.DB, r.ResourceTypeID, r.Quantity, domain.ChangeSnapshot); err != nil {
			s.Log.Error().Err(err).
				Str("resource_id", r.ID).
				Str("resource_type_id", r.ResourceTypeID).
				Msg("snapshot insert failed")
			continue
		}
		recorded++
	}

	if err := s.Resources.BroadcastSnapshot(ctx, firedAt); err != nil {
		s.Log.Error().Err(err).Msg("snapshot broadcast failed")
	}

	s.Log.Debug().
		Int("resources", len(rows)).
		Int("recorded", recorded).
		Time("fired_at", firedAt).
		Msg("snapshot firing complete")
	return nil
}

func (s *Scheduler) sweepLoop(ctx context.Context) {
	for {
		timer := time.NewTimer(time.Until(nextSweep(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.Log.Error().Err(err).Msg("retention sweep failed")
			}
		}
	}
}

// SweepOnce performs one retention sweep: a single bulk delete of samples
// older than the retention window. Failure is logged by the caller and not
// retried until the next scheduled firing.
func (s *Scheduler) SweepOnce(ctx context.Context) error {
	n, err := s.History.PurgeOlderThan(ctx, RetentionDays)
	if err != nil {
		return err
	}
	s.Log.Info().Int64("deleted", n).Int("retention_days", RetentionDays).Msg("retention sweep complete")
	return nil
}

// nextSweep returns the next occurrence of the sweep hour after now.
func nextSweep(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), sweepHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
