package model

import (
	"context"
	"time"
)

// Job is one posting as normalized by a source adapter.
type Job struct {
	Company  string // "-" when the source does not expose it
	Title    string // never empty for fetched jobs
	Location string // "Remote" unless the source says otherwise
	URL      string // apply link, may be empty
	Keywords string // semicolon-joined topical tags
	Skills   string // semicolon-joined skill tags
	Source   string // adapter name
}

// JobFetcher fetches job listings from one source.
type JobFetcher interface {
	FetchJobs(ctx context.Context) ([]Job, error)
}

// Notifier delivers a rendered HTML digest.
type Notifier interface {
	Notify(ctx context.Context, html string) (Delivery, error)
}

// Delivery describes what the notifier handed off.
type Delivery struct {
	StatusCode int // provider status, zero for notifiers without one
}

// RunRecord is the outcome of one digest run.
type RunRecord struct {
	ID        int64
	RanAt     time.Time
	Fetched   int
	Delivered int
	Status    int
	Err       string
}

// RunLog keeps a history of digest runs. It never stores job identities.
type RunLog interface {
	Record(rec RunRecord) error
	Recent(limit int) ([]RunRecord, error)
}
