package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/schedkit/schedkit"
	"github.com/schedkit/schedkit/cronexpr"
	"github.com/schedkit/schedkit/job"
)

// entry pairs a job with its schedule and runtime state. All fields are
// guarded by the owning store's mutex.
type entry struct {
	id      string
	label   string
	job     job.Job
	expr    *cronexpr.Expression
	enabled bool
	running bool
	lastRun *time.Time
	nextRun *time.Time
	execs   uint64
}

func (e *entry) snapshot() JobInfo {
	info := JobInfo{
		ID:             e.id,
		Name:           e.job.Name,
		Spec:           e.expr.String(),
		Enabled:        e.enabled,
		ExecutionCount: e.execs,
		IsRunning:      e.running,
	}
	if e.lastRun != nil {
		t := *e.lastRun
		info.LastRun = &t
	}
	if e.nextRun != nil {
		t := *e.nextRun
		info.NextRun = &t
	}
	return info
}

// store holds scheduled entries. It is shared between the Scheduler and
// the TaskHandles it issues, so handles stay valid independently of the
// scheduler's run state.
type store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	names   map[string]string // job name -> entry id
	counter uint64
}

func newStore() *store {
	return &store{
		entries: make(map[string]*entry),
		names:   make(map[string]string),
	}
}

func (st *store) add(label string, j job.Job, expr *cronexpr.Expression, now time.Time) (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.names[j.Name]; ok {
		return "", fmt.Errorf("job %q: %w", j.Name, schedkit.ErrJobAlreadyExists)
	}

	st.counter++
	id := fmt.Sprintf("%s_%d", label, st.counter)

	e := &entry{
		id:      id,
		label:   label,
		job:     j,
		expr:    expr,
		enabled: true,
	}
	if next, ok := expr.NextAfter(now); ok {
		e.nextRun = &next
	}

	st.entries[id] = e
	st.names[j.Name] = id
	return id, nil
}

func (st *store) remove(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.entries[id]
	if !ok {
		return fmt.Errorf("job id %q: %w", id, schedkit.ErrJobNotFound)
	}
	delete(st.names, e.job.Name)
	delete(st.entries, id)
	return nil
}

func (st *store) clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.entries = make(map[string]*entry)
	st.names = make(map[string]string)
}

func (st *store) setEnabled(id string, enabled bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.entries[id]
	if !ok {
		return fmt.Errorf("job id %q: %w", id, schedkit.ErrJobNotFound)
	}
	e.enabled = enabled
	return nil
}

func (st *store) info(id string) (JobInfo, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	e, ok := st.entries[id]
	if !ok {
		return JobInfo{}, fmt.Errorf("job id %q: %w", id, schedkit.ErrJobNotFound)
	}
	return e.snapshot(), nil
}

func (st *store) infos() []JobInfo {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]JobInfo, 0, len(st.entries))
	for _, e := range st.entries {
		out = append(out, e.snapshot())
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

func (st *store) count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.entries)
}

// claimed carries what a dispatch goroutine needs without holding the
// store lock.
type claimed struct {
	id  string
	job job.Job
}

// claimDue marks every due entry as running and returns it for dispatch.
// A non-zero window skips entries overdue by more than the window and
// only reschedules them. Claiming flips the running flag, stamps the
// last run, bumps the execution count, and recomputes the next run, all
// in a single lock acquisition so a slow job can never be claimed twice.
func (st *store) claimDue(now time.Time, window time.Duration) []claimed {
	st.mu.Lock()
	defer st.mu.Unlock()

	var due []claimed
	for _, e := range st.entries {
		if !e.enabled || e.running || e.nextRun == nil || e.nextRun.After(now) {
			continue
		}
		if window > 0 && now.Sub(*e.nextRun) > window {
			e.reschedule(now)
			continue
		}
		e.running = true
		t := now
		e.lastRun = &t
		e.execs++
		e.reschedule(now)
		due = append(due, claimed{id: e.id, job: e.job})
	}
	return due
}

func (e *entry) reschedule(now time.Time) {
	if next, ok := e.expr.NextAfter(now); ok {
		e.nextRun = &next
	} else {
		e.nextRun = nil
	}
}

// finish clears the running flag after a dispatched execution completes.
func (st *store) finish(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if e, ok := st.entries[id]; ok {
		e.running = false
	}
}

// beginTrigger claims an entry for a manual, out-of-schedule execution.
// The next run time is left untouched.
func (st *store) beginTrigger(id string, now time.Time) (job.Job, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.entries[id]
	if !ok {
		return job.Job{}, fmt.Errorf("job id %q: %w", id, schedkit.ErrJobNotFound)
	}
	if e.running {
		return job.Job{}, fmt.Errorf("job id %q: %w", id, schedkit.ErrJobAlreadyRunning)
	}
	e.running = true
	t := now
	e.lastRun = &t
	e.execs++
	return e.job, nil
}
