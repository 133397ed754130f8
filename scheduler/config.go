package scheduler

import (
	"log/slog"
	"time"

	"github.com/schedkit/schedkit"
	"github.com/schedkit/schedkit/history"
	"github.com/schedkit/schedkit/middleware"
)

// Config controls the scheduler's dispatch behavior.
type Config struct {
	// TickInterval is how often the scheduler checks for due entries.
	TickInterval time.Duration

	// MaxConcurrentJobs bounds how many jobs may execute at once.
	// Dispatched jobs beyond the limit wait for a slot.
	MaxConcurrentJobs int

	// RunMissedJobs fires entries whose run time passed while the
	// scheduler was busy or stopped. When false, an entry more than one
	// tick overdue is skipped and rescheduled.
	RunMissedJobs bool

	// Timezone labels the scheduler for logs and introspection.
	// Expressions are always evaluated in the local time of the clock.
	Timezone string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		TickInterval:      time.Second,
		MaxConcurrentJobs: 100,
		RunMissedJobs:     true,
		Timezone:          "UTC",
	}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(s *Scheduler) { s.cfg = cfg }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// WithClock sets the time source. Used by tests to drive ticks manually.
func WithClock(clk schedkit.Clock) Option {
	return func(s *Scheduler) { s.clk = clk }
}

// WithMiddleware appends middleware applied around every dispatched
// execution, outermost first.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(s *Scheduler) { s.mws = append(s.mws, mws...) }
}

// WithRecorder sets the execution history recorder.
func WithRecorder(rec history.Recorder) Option {
	return func(s *Scheduler) { s.recorder = rec }
}
