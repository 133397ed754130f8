// Package schedkit provides a cron-driven job scheduler as a library.
// It parses extended cron expressions, wraps arbitrary units of work as
// retryable, timeout-bounded jobs, and runs a concurrent dispatch loop
// that fires due jobs and reschedules them.
//
// schedkit is a library, not a service. Construct a scheduler, add jobs
// with cron expressions, and start it:
//
//	s := scheduler.New()
//	j := job.New("cleanup", func(ctx context.Context) error {
//	    return removeExpired(ctx)
//	}).WithTimeout(2 * time.Minute).WithMaxRetries(3)
//
//	handle, err := s.AddJobSpec("cleanup", j, "0 */6 * * *")
//	...
//	s.Start(ctx)
//	defer s.Stop(ctx)
//
// # Architecture
//
// Each subsystem lives in its own package: cronexpr (expression parsing
// and evaluation), job (units of work, metadata, registry), retry
// (backoff strategies), middleware (cross-cutting execution wrappers),
// scheduler (the dispatch loop), and history (execution records).
//
// The root package holds the shared error sentinels and the Clock
// abstraction — the library's only environmental dependency — so the
// whole scheduler can be driven by a virtual clock in tests.
package schedkit
