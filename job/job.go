package job

import (
	"context"
	"fmt"
	"time"

	"github.com/schedkit/schedkit"
	"github.com/schedkit/schedkit/retry"
)

// DefaultTimeout bounds a job execution when no explicit timeout is set.
const DefaultTimeout = 5 * time.Minute

// Func is the work a job performs. The context carries the execution
// deadline; long-running work should honor ctx.Done().
type Func func(ctx context.Context) error

// Metadata describes how a job should be executed.
type Metadata struct {
	Category       string
	Priority       int
	Timeout        time.Duration
	MaxRetries     int
	RetryOnFailure bool
	Tags           []string
}

// Job is a named, schedulable unit of work. Jobs are values: the With*
// builders return modified copies, leaving the receiver untouched.
type Job struct {
	Name        string
	Description string
	Metadata    Metadata

	fn     Func
	policy retry.Strategy
	clk    schedkit.Clock
}

// New creates a job with the default timeout and no retries.
func New(name string, fn Func) Job {
	return Job{
		Name: name,
		fn:   fn,
		Metadata: Metadata{
			Timeout: DefaultTimeout,
		},
	}
}

// NewSync wraps a plain function that does not observe a context.
// The execution deadline still applies, but the work cannot be
// interrupted once started.
func NewSync(name string, fn func() error) Job {
	return New(name, func(context.Context) error { return fn() })
}

// WithDescription returns a copy with a human-readable description.
func (j Job) WithDescription(desc string) Job {
	j.Description = desc
	return j
}

// WithCategory returns a copy assigned to a category.
func (j Job) WithCategory(category string) Job {
	j.Metadata.Category = category
	return j
}

// WithPriority returns a copy with the given priority. Higher values
// sort first in Registry.GetByPriority.
func (j Job) WithPriority(priority int) Job {
	j.Metadata.Priority = priority
	return j
}

// WithTimeout returns a copy with an execution deadline.
func (j Job) WithTimeout(timeout time.Duration) Job {
	j.Metadata.Timeout = timeout
	return j
}

// WithMaxRetries returns a copy that retries up to n times after a
// failed attempt. n of zero disables retries.
func (j Job) WithMaxRetries(n int) Job {
	j.Metadata.MaxRetries = n
	j.Metadata.RetryOnFailure = n > 0
	return j
}

// WithTags returns a copy with the given tags, replacing any existing
// ones.
func (j Job) WithTags(tags ...string) Job {
	j.Metadata.Tags = append([]string(nil), tags...)
	return j
}

// WithTag returns a copy with one more tag.
func (j Job) WithTag(tag string) Job {
	tags := make([]string, 0, len(j.Metadata.Tags)+1)
	tags = append(tags, j.Metadata.Tags...)
	j.Metadata.Tags = append(tags, tag)
	return j
}

// WithRetryPolicy returns a copy using the given backoff between retry
// attempts instead of the default exponential backoff.
func (j Job) WithRetryPolicy(policy retry.Strategy) Job {
	j.policy = policy
	return j
}

// WithClock returns a copy that reads time from clk. Used by tests to
// make retry delays instantaneous.
func (j Job) WithClock(clk schedkit.Clock) Job {
	j.clk = clk
	return j
}

func (j Job) clock() schedkit.Clock {
	if j.clk != nil {
		return j.clk
	}
	return schedkit.SystemClock()
}

func (j Job) backoff() retry.Strategy {
	if j.policy != nil {
		return j.policy
	}
	return retry.Default()
}

func (j Job) timeout() time.Duration {
	if j.Metadata.Timeout > 0 {
		return j.Metadata.Timeout
	}
	return DefaultTimeout
}

// Validate reports whether the job is executable. A job built without a
// work function fails here instead of panicking at dispatch time.
func (j Job) Validate() error {
	if j.fn == nil {
		return fmt.Errorf("job %q: %w", j.Name, schedkit.ErrNoJobFunc)
	}
	return nil
}

// Execute runs the job once with its timeout applied through the
// context. If the work ignores the context and overruns the deadline,
// Execute still reports a timeout failure.
func (j Job) Execute(ctx context.Context) error {
	if err := j.Validate(); err != nil {
		return err
	}
	timeout := j.timeout()
	clk := j.clock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := clk.Now()
	err := j.fn(ctx)
	elapsed := clk.Now().Sub(start)

	if err != nil {
		return fmt.Errorf("job %q: %w", j.Name, err)
	}
	// Work that ignores the context can overrun the deadline and still
	// return nil; report that as a timeout failure.
	if elapsed > timeout {
		return fmt.Errorf("job %q ran %v, limit %v: %w", j.Name, elapsed, timeout, schedkit.ErrJobTimeout)
	}
	return nil
}

// Result summarizes a full execution, including any retries.
type Result struct {
	Success     bool
	Err         string
	Attempts    int
	Duration    time.Duration
	StartedAt   time.Time
	CompletedAt time.Time
}

// ExecuteWithRetries runs the job, retrying failed attempts up to
// Metadata.MaxRetries times with the job's backoff in between. The
// result's duration spans all attempts including backoff waits.
func (j Job) ExecuteWithRetries(ctx context.Context) Result {
	clk := j.clock()
	policy := j.backoff()
	attempts := j.Metadata.MaxRetries + 1

	res := Result{StartedAt: clk.Now()}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		res.Attempts = attempt
		lastErr = j.Execute(ctx)
		if lastErr == nil {
			res.Success = true
			break
		}
		if attempt == attempts {
			break
		}
		if err := clk.Sleep(ctx, policy.Delay(attempt)); err != nil {
			// Cancelled while backing off; report the cancellation.
			lastErr = err
			break
		}
	}

	res.CompletedAt = clk.Now()
	res.Duration = res.CompletedAt.Sub(res.StartedAt)
	if lastErr != nil {
		res.Err = lastErr.Error()
	}
	return res
}
