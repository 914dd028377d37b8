package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amishk599/jobdigest/internal/digest"
	"github.com/amishk599/jobdigest/internal/notifier"
)

// Runner runs one digest.
type Runner interface {
	Run(ctx context.Context) (digest.Result, error)
}

// Scheduler owns the daemon loop: runs a digest now, then once per interval.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler running runner every interval.
func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. It runs one immediate digest, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful
// shutdown). A failed run is logged and the loop continues, except for a
// missing API key, which no later run can recover from.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	if err := s.runOnce(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			if err := s.runOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) error {
	res, err := s.runner.Run(ctx)
	if err != nil {
		if errors.Is(err, notifier.ErrMissingAPIKey) {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		s.logger.Error("digest run failed", "error", err)
		return nil
	}
	s.logger.Info("digest run complete",
		"fetched", res.Fetched,
		"delivered", len(res.Jobs),
		"status", res.Delivery.StatusCode,
		"next_run", time.Now().Add(s.interval).Format(time.RFC3339),
	)
	return nil
}
