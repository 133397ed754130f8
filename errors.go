package schedkit

import "errors"

var (
	// Not found errors.
	ErrJobNotFound = errors.New("schedkit: job not found")

	// Conflict errors.
	ErrJobAlreadyExists  = errors.New("schedkit: job already exists")
	ErrJobAlreadyRunning = errors.New("schedkit: job is already running")

	// Lifecycle errors.
	ErrSchedulerRunning = errors.New("schedkit: scheduler is already running")
	ErrSchedulerStopped = errors.New("schedkit: scheduler is not running")

	// Execution errors.
	ErrJobTimeout = errors.New("schedkit: job exceeded timeout")
	ErrNoJobFunc  = errors.New("schedkit: job has no work function")
)
