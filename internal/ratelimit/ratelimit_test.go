package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amishk599/jobdigest/internal/model"
)

func TestPacer_FirstWaitIsImmediate(t *testing.T) {
	p := NewPacer(time.Second)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected first wait to be near-instant, got %v", elapsed)
	}
}

func TestPacer_EnforcesDelay(t *testing.T) {
	p := NewPacer(100 * time.Millisecond)
	ctx := context.Background()

	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)

	// Should have waited at least ~100ms (allow 80ms for timer jitter).
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestPacer_ZeroDelayNeverBlocks(t *testing.T) {
	p := NewPacer(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected no pacing, got %v", elapsed)
	}
}

func TestPacer_ContextCancellation(t *testing.T) {
	p := NewPacer(5 * time.Second)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := p.Wait(ctx)
	if err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("cancelled wait should return promptly, took %v", elapsed)
	}
}

type countingFetcher struct {
	calls []time.Time
}

func (c *countingFetcher) FetchJobs(_ context.Context) ([]model.Job, error) {
	c.calls = append(c.calls, time.Now())
	return []model.Job{{Title: "Data Analyst"}}, nil
}

func TestPacedFetcher_SharedPacerSpacesSources(t *testing.T) {
	pacer := NewPacer(60 * time.Millisecond)
	inner := &countingFetcher{}
	a := NewPacedFetcher(inner, pacer)
	b := NewPacedFetcher(inner, pacer)

	ctx := context.Background()
	if _, err := a.FetchJobs(ctx); err != nil {
		t.Fatalf("a: %v", err)
	}
	jobs, err := b.FetchJobs(ctx)
	if err != nil {
		t.Fatalf("b: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if len(inner.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(inner.calls))
	}
	if gap := inner.calls[1].Sub(inner.calls[0]); gap < 40*time.Millisecond {
		t.Errorf("expected sources to be spaced, gap was %v", gap)
	}
}

func TestPacer_DoneRestartsWindow(t *testing.T) {
	p := NewPacer(100 * time.Millisecond)
	ctx := context.Background()

	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	// Longer than the delay: without Done the token would already be back.
	time.Sleep(150 * time.Millisecond)
	p.Done()

	start := time.Now()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected full delay after Done, waited %v", elapsed)
	}
}

// slowFetcher records when each fetch started and finished.
type slowFetcher struct {
	sleep  time.Duration
	starts []time.Time
	ends   []time.Time
}

func (s *slowFetcher) FetchJobs(_ context.Context) ([]model.Job, error) {
	s.starts = append(s.starts, time.Now())
	time.Sleep(s.sleep)
	s.ends = append(s.ends, time.Now())
	return nil, nil
}

func TestPacedFetcher_DelayCountsFromCompletion(t *testing.T) {
	pacer := NewPacer(100 * time.Millisecond)
	slow := &slowFetcher{sleep: 150 * time.Millisecond}
	next := &countingFetcher{}

	ctx := context.Background()
	if _, err := NewPacedFetcher(slow, pacer).FetchJobs(ctx); err != nil {
		t.Fatalf("slow: %v", err)
	}
	if _, err := NewPacedFetcher(next, pacer).FetchJobs(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}

	if gap := next.calls[0].Sub(slow.ends[0]); gap < 80*time.Millisecond {
		t.Errorf("gap after slow fetch = %v, want about 100ms", gap)
	}
}
