package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/jobdigest/internal/dedupe"
	"github.com/amishk599/jobdigest/internal/isolate"
	"github.com/amishk599/jobdigest/internal/model"
	"github.com/amishk599/jobdigest/internal/ratelimit"
	"github.com/amishk599/jobdigest/internal/render"
)

// Source is a named job source. Sources are fetched in slice order.
type Source struct {
	Name    string
	Fetcher model.JobFetcher
}

// SourceCount is how many jobs one source contributed before dedup.
type SourceCount struct {
	Name string
	Jobs int
}

// Collection is the deduplicated output of all sources.
type Collection struct {
	Counts  []SourceCount
	Fetched int
	Jobs    []model.Job
}

// Result is the outcome of one full run.
type Result struct {
	Collection
	HTML     string
	Delivery model.Delivery
}

// Digest owns the run pipeline: fetch each source in turn → dedupe → render → notify.
type Digest struct {
	sources     []Source
	notifier    model.Notifier
	runLog      model.RunLog
	attribution string
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a digest. Every source is paced by pacer and isolated, so a
// failing source contributes zero jobs instead of an error. runLog may be nil.
func New(
	sources []Source,
	pacer *ratelimit.Pacer,
	notifier model.Notifier,
	runLog model.RunLog,
	attribution string,
	logger *slog.Logger,
) *Digest {
	wrapped := make([]Source, 0, len(sources))
	for _, s := range sources {
		f := isolate.NewBestEffortFetcher(ratelimit.NewPacedFetcher(s.Fetcher, pacer), s.Name, logger)
		wrapped = append(wrapped, Source{Name: s.Name, Fetcher: f})
	}
	return &Digest{
		sources:     wrapped,
		notifier:    notifier,
		runLog:      runLog,
		attribution: attribution,
		logger:      logger,
		now:         time.Now,
	}
}

// Collect fetches every source sequentially and deduplicates the results.
func (d *Digest) Collect(ctx context.Context) (Collection, error) {
	var c Collection
	var all []model.Job
	for _, s := range d.sources {
		jobs, err := s.Fetcher.FetchJobs(ctx)
		if err != nil {
			return c, fmt.Errorf("collecting %s: %w", s.Name, err)
		}
		d.logger.Info("fetched source", "source", s.Name, "jobs", len(jobs))
		c.Counts = append(c.Counts, SourceCount{Name: s.Name, Jobs: len(jobs)})
		all = append(all, jobs...)
	}
	if err := ctx.Err(); err != nil {
		return c, fmt.Errorf("collecting: %w", err)
	}

	c.Fetched = len(all)
	c.Jobs = dedupe.Jobs(all)
	d.logger.Info("collected jobs", "fetched", c.Fetched, "unique", len(c.Jobs))
	return c, nil
}

// Run collects, renders and notifies once. An empty collection still sends
// the short "no jobs" notice.
func (d *Digest) Run(ctx context.Context) (Result, error) {
	ranAt := d.now()

	c, err := d.Collect(ctx)
	if err != nil {
		return Result{}, err
	}
	res := Result{Collection: c}

	if len(c.Jobs) == 0 {
		d.logger.Info("no jobs found, sending short status email")
	}
	res.HTML, err = render.Body(c.Jobs, d.attribution)
	if err != nil {
		return res, err
	}

	res.Delivery, err = d.notifier.Notify(ctx, res.HTML)
	d.record(ranAt, res, err)
	if err != nil {
		return res, fmt.Errorf("notifying: %w", err)
	}
	return res, nil
}

func (d *Digest) record(ranAt time.Time, res Result, sendErr error) {
	if d.runLog == nil {
		return
	}
	rec := model.RunRecord{
		RanAt:     ranAt,
		Fetched:   res.Fetched,
		Delivered: len(res.Jobs),
		Status:    res.Delivery.StatusCode,
	}
	if sendErr != nil {
		rec.Err = sendErr.Error()
	}
	if err := d.runLog.Record(rec); err != nil {
		d.logger.Warn("failed to record run", "error", err)
	}
}
