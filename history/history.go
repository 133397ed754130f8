// Package history records job execution outcomes. The scheduler writes a
// Record after every dispatched execution; callers query recent records
// for inspection and debugging.
//
// Two recorders are provided: an in-memory ring buffer for tests and
// short-lived processes, and a SQLite-backed recorder for durable
// history.
package history

import (
	"context"
	"time"
)

// Record is the outcome of one job execution, including retries.
type Record struct {
	JobID       string
	JobName     string
	Success     bool
	Error       string
	Attempts    int
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
}

// Recorder stores execution records.
type Recorder interface {
	// Record appends one execution outcome.
	Record(ctx context.Context, rec Record) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
	// Close releases any underlying resources.
	Close() error
}
