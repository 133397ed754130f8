// Package job defines the unit of schedulable work: a named function
// with execution metadata (timeout, retries, priority, tags) and a
// registry for looking jobs up by name, category, tag, or priority.
//
// Job values use copy-on-write builders, so a configured Job can be
// shared freely:
//
//	j := job.New("cleanup", cleanupFn).
//		WithTimeout(30 * time.Second).
//		WithMaxRetries(3)
//
// Execute runs a job once under its timeout. ExecuteWithRetries wraps
// Execute with the job's backoff policy and reports a Result covering
// all attempts.
package job
