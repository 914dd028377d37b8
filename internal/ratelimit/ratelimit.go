package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/amishk599/jobdigest/internal/model"
)

// Pacer enforces a minimum gap between the end of one source request and the
// start of the next. The first request passes immediately.
type Pacer struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	delay   time.Duration
}

// NewPacer creates a pacer allowing one request per delay. A zero delay
// disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{
		limiter: rate.NewLimiter(limit, 1),
		delay:   delay,
	}
}

// Wait blocks until the next request may proceed.
// Returns an error if the context is cancelled while waiting.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	limiter := p.limiter
	p.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacer wait (%v): %w", p.delay, err)
	}
	return nil
}

// Done restarts the delay window from now. Call it when a request completes,
// so a slow request still leaves the full gap before the next one.
func (p *Pacer) Done() {
	if p.delay <= 0 {
		return
	}
	limiter := rate.NewLimiter(rate.Every(p.delay), 1)
	limiter.Allow()

	p.mu.Lock()
	p.limiter = limiter
	p.mu.Unlock()
}

// PacedFetcher is a decorator that waits on a shared Pacer before delegating
// to the wrapped JobFetcher.
type PacedFetcher struct {
	inner model.JobFetcher
	pacer *Pacer
}

// NewPacedFetcher wraps a JobFetcher with pacing. All sources of one digest
// share the same pacer so their requests are spaced out.
func NewPacedFetcher(inner model.JobFetcher, pacer *Pacer) *PacedFetcher {
	return &PacedFetcher{
		inner: inner,
		pacer: pacer,
	}
}

// FetchJobs waits for the pacer, delegates to the wrapped fetcher, then
// restarts the pacer window once the fetch has finished.
func (f *PacedFetcher) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if err := f.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	defer f.pacer.Done()
	return f.inner.FetchJobs(ctx)
}
