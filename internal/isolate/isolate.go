package isolate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amishk599/jobdigest/internal/model"
)

// BestEffortFetcher is a decorator that never fails: any error from the
// wrapped JobFetcher is logged and turned into an empty result, so one broken
// source cannot abort a digest.
type BestEffortFetcher struct {
	inner  model.JobFetcher
	source string
	logger *slog.Logger
}

// NewBestEffortFetcher wraps inner, naming it source in log output.
func NewBestEffortFetcher(inner model.JobFetcher, source string, logger *slog.Logger) *BestEffortFetcher {
	return &BestEffortFetcher{
		inner:  inner,
		source: source,
		logger: logger,
	}
}

// FetchJobs delegates to the wrapped fetcher. The returned error is always nil.
func (f *BestEffortFetcher) FetchJobs(ctx context.Context) ([]model.Job, error) {
	jobs, err := f.inner.FetchJobs(ctx)
	if err == nil {
		return jobs, nil
	}

	args := []any{"source", f.source, "error", err}
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		args = append(args, "status", httpErr.StatusCode)
	}
	if errors.Is(err, context.Canceled) {
		f.logger.Info("source fetch cancelled", args...)
	} else {
		f.logger.Warn("source fetch failed, continuing without it", args...)
	}
	return []model.Job{}, nil
}
