// retention_sweeper.go implements the RetentionSweeper background job, which
// periodically deletes activity log entries older than the retention horizon.
// The startup sweep in cmd/server and this job run the same idempotent delete,
// so a long-stopped server catches up on its backlog the moment it boots and
// stays current afterwards.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/telemetry"
)

// defaultSweepInterval applies when configuration omits or zeroes the interval.
const defaultSweepInterval = time.Hour

// sweepTimeout bounds a single delete so a wedged database connection cannot
// pin the sweeper goroutine.
const sweepTimeout = 2 * time.Minute

// RetentionSweeper periodically deletes expired activity log entries.
type RetentionSweeper struct {
	logs     *repositories.ActivityLogRepository
	interval time.Duration
	stopChan chan struct{}
}

// NewRetentionSweeper creates a new RetentionSweeper. A non-positive interval
// falls back to one hour.
func NewRetentionSweeper(logs *repositories.ActivityLogRepository, interval time.Duration) *RetentionSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &RetentionSweeper{
		logs:     logs,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the background sweep loop. It runs an initial sweep
// immediately, then repeats on the configured interval. The loop exits when
// ctx is cancelled or Stop() is called.
func (s *RetentionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("retention sweeper started", "interval", s.interval)

	s.sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			slog.Info("retention sweeper stopped")
			return
		case <-ctx.Done():
			slog.Info("retention sweeper context cancelled")
			return
		}
	}
}

// Stop signals the background loop to exit.
func (s *RetentionSweeper) Stop() {
	close(s.stopChan)
}

// sweep deletes entries past the retention horizon. Failures are logged and
// retried on the next tick; the sweep never takes the server down.
func (s *RetentionSweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	start := time.Now()
	deleted, err := s.logs.DeleteExpired(sweepCtx)
	telemetry.RetentionSweepDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Warn("retention sweep failed", "error", err)
		return
	}

	if deleted > 0 {
		telemetry.ActivityLogsExpiredTotal.Add(float64(deleted))
		slog.Info("retention sweep removed expired activity logs", "deleted", deleted)
	}
}
