package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/micabrunel/marcelle-mobi/internal/observability"
)

// Refresher is the part of the dashboard service the scheduler drives.
type Refresher interface {
	PruneSessions() int
	RefreshAll(ctx context.Context) error
}

// Scheduler periodically prunes idle sessions and refreshes every live dashboard.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a new Scheduler. timeout bounds a single refresh run.
func New(interval, timeout time.Duration, service Refresher, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.With("component", "scheduler"),
		metrics:   metrics,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval disables the periodic refresh.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("refresh interval not set; periodic refresh disabled")
		return nil
	}

	// The first run happens one interval after start; new sessions fetch on demand.
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("periodic refresh scheduled", "interval", s.interval.String())
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) run() {
	s.service.PruneSessions()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.service.RefreshAll(ctx); err != nil {
		s.logger.Warn("scheduled refresh failed", "error", err, "elapsed", time.Since(start).String())
	} else {
		s.logger.Debug("scheduled refresh completed", "elapsed", time.Since(start).String())
	}
	s.metrics.RefreshRuns.Inc()
}
