// Package scheduler runs cron-scheduled jobs on a tick loop.
//
// A [Scheduler] holds a set of entries, each pairing a [job.Job] with a
// [cronexpr.Expression]. On every tick the scheduler claims the entries
// whose next run time has arrived and dispatches each one on its own
// goroutine, bounded by the configured concurrency limit. Executions run
// through the configured middleware chain and their outcomes are handed
// to the configured [history.Recorder].
//
//	s := scheduler.New(scheduler.WithLogger(logger))
//	handle, err := s.AddJobSpec("report", reportJob, "0 9 * * 1-5")
//	...
//	s.Start(ctx)
//	defer s.Stop(ctx)
//
// [AddJob] returns a [TaskHandle] that can inspect and control the entry
// while the scheduler runs. A job may also be fired out of schedule with
// [Scheduler.TriggerJob], which executes it synchronously.
package scheduler
