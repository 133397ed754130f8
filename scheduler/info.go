package scheduler

import "time"

// JobInfo is a point-in-time snapshot of a scheduled entry.
type JobInfo struct {
	ID             string
	Name           string
	Spec           string
	NextRun        *time.Time
	LastRun        *time.Time
	Enabled        bool
	ExecutionCount uint64
	IsRunning      bool
}
