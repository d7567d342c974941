package hashtag

import (
	"context"
	"errors"
	"time"

	"github.com/yibu/backend/internal/logger"
	"github.com/yibu/backend/internal/metrics"
	"github.com/yibu/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Window durations for the trailing counters
const (
	hourWindow = time.Hour
	dayWindow  = 24 * time.Hour
	weekWindow = 7 * 24 * time.Hour
)

const rolloverBatchSize = 200

// errStaleSnapshot means the record was used again between the batch read and
// the update. The record is left for the next tick rather than risking a reset
// decision based on stale counters.
var errStaleSnapshot = errors.New("hashtag updated since batch read")

// Scheduler periodically decays expired window counters and refreshes
// trending scores. Decay policy is a hard reset: once a window has fully
// elapsed with no new usage, its counter drops to zero.
//
// Passes are idempotent. Reset decisions are gated on usage_updated_at, which
// only ingestion advances, so running the same pass twice writes the same
// zeros twice.
type Scheduler struct {
	db       *gorm.DB
	ctx      context.Context
	cancel   context.CancelFunc
	interval time.Duration
}

// NewScheduler creates a rollover scheduler ticking at the given interval
func NewScheduler(db *gorm.DB, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		db:       db,
		ctx:      ctx,
		cancel:   cancel,
		interval: interval,
	}
}

// Start begins the periodic rollover process
func (s *Scheduler) Start() {
	logger.Log.Info("Starting hashtag rollover scheduler",
		zap.Duration("interval", s.interval),
	)
	go s.run()
}

// Stop stops the scheduler. In-flight per-record updates are single UPDATE
// statements, so cancellation never leaves a record half-written.
func (s *Scheduler) Stop() {
	logger.Log.Info("Stopping hashtag rollover scheduler")
	s.cancel()
}

// run executes rollover passes on the configured interval
func (s *Scheduler) run() {
	// Run immediately on startup
	s.RunPass(time.Now().UTC())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunPass(time.Now().UTC())
		case <-s.ctx.Done():
			return
		}
	}
}

// RunPass decays expired windows and rescores every record, evaluated at now.
// Per-record failures are logged and skipped; a failure to read the table at
// all aborts the pass, which is retried on the next tick.
func (s *Scheduler) RunPass(now time.Time) {
	m := metrics.Get()
	start := time.Now()

	scored := 0
	skipped := 0
	failed := 0

	var batch []models.Hashtag
	result := s.db.WithContext(s.ctx).FindInBatches(&batch, rolloverBatchSize, func(tx *gorm.DB, _ int) error {
		for i := range batch {
			if err := s.rescoreRecord(&batch[i], now); err != nil {
				if errors.Is(err, errStaleSnapshot) {
					skipped++
					continue
				}
				logger.Log.Warn("Failed to rescore hashtag",
					logger.WithTag(batch[i].Name),
					zap.Error(err),
				)
				failed++
				continue
			}
			scored++
		}
		return nil
	})

	if result.Error != nil {
		logger.ErrorWithFields("Rollover pass aborted", result.Error)
		m.RolloverRunsTotal.WithLabelValues("aborted").Inc()
		return
	}

	m.RolloverRunsTotal.WithLabelValues("ok").Inc()
	m.RolloverDuration.Observe(time.Since(start).Seconds())
	m.RolloverRecordsTotal.WithLabelValues("scored").Add(float64(scored))
	m.RolloverRecordsTotal.WithLabelValues("skipped").Add(float64(skipped))
	m.RolloverRecordsTotal.WithLabelValues("failed").Add(float64(failed))

	logger.Log.Debug("Rollover pass completed",
		zap.Int("scored", scored),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Duration("took", time.Since(start)),
	)
}

// rescoreRecord applies window decay and score refresh for one record as a
// single UPDATE. Window columns are only written when they actually reset, and
// the statement is guarded on the usage_updated_at value seen at batch read:
// an increment landing after the read advances usage_updated_at, the guard
// misses, and the record is skipped instead of having the fresh count zeroed.
func (s *Scheduler) rescoreRecord(rec *models.Hashtag, now time.Time) error {
	age := now.Sub(rec.UsageUpdatedAt)

	snapshot := *rec
	updates := map[string]interface{}{}

	if age >= hourWindow && rec.LastHour != 0 {
		snapshot.LastHour = 0
		updates["last_hour"] = int64(0)
	}
	if age >= dayWindow && rec.Last24Hours != 0 {
		snapshot.Last24Hours = 0
		updates["last_24h"] = int64(0)
	}
	if age >= weekWindow && rec.Last7Days != 0 {
		snapshot.Last7Days = 0
		updates["last_7d"] = int64(0)
	}

	result := ComputeScore(&snapshot, now)

	// Score fields are owned by this path and overwritten wholesale. The
	// velocity snapshot only moves forward: when no time has passed since the
	// previous scoring (a re-run at the same instant), the stored velocity is
	// left alone rather than being replaced with a zero-elapsed reading.
	updates["trending_score"] = result.Score
	if rec.LastScoredAt == nil || now.After(*rec.LastScoredAt) {
		updates["velocity"] = result.Velocity
		updates["prev_last_24h"] = snapshot.Last24Hours
		updates["last_scored_at"] = now
	}

	res := s.db.WithContext(s.ctx).Model(&models.Hashtag{}).
		Where("id = ? AND usage_updated_at = ?", rec.ID, rec.UsageUpdatedAt).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStaleSnapshot
	}
	return nil
}
