package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/schedkit/schedkit"
	"github.com/schedkit/schedkit/cronexpr"
	"github.com/schedkit/schedkit/history"
	"github.com/schedkit/schedkit/job"
	"github.com/schedkit/schedkit/middleware"
)

// Scheduler dispatches registered jobs when their cron schedule fires.
type Scheduler struct {
	cfg      Config
	logger   *slog.Logger
	clk      schedkit.Clock
	mws      []middleware.Middleware
	recorder history.Recorder

	st  *store
	sem chan struct{}

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	loopWG sync.WaitGroup
	execWG sync.WaitGroup
}

// New creates a scheduler with the given options applied over the
// defaults.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:    DefaultConfig(),
		logger: slog.Default(),
		clk:    schedkit.SystemClock(),
		st:     newStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.TickInterval <= 0 {
		s.cfg.TickInterval = time.Second
	}
	if s.cfg.MaxConcurrentJobs < 1 {
		s.cfg.MaxConcurrentJobs = DefaultConfig().MaxConcurrentJobs
	}
	s.sem = make(chan struct{}, s.cfg.MaxConcurrentJobs)
	return s
}

// AddJob schedules a job under the given cron expression. The label
// seeds the entry id; entries are identified as "<label>_<n>". Adding a
// second job with the same Job.Name fails.
func (s *Scheduler) AddJob(label string, j job.Job, expr *cronexpr.Expression) (*TaskHandle, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	if err := expr.Validate(); err != nil {
		return nil, err
	}

	id, err := s.st.add(label, j, expr, s.clk.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("job scheduled",
		slog.String("job_id", id),
		slog.String("job_name", j.Name),
		slog.String("spec", expr.String()),
	)
	return &TaskHandle{id: id, st: s.st}, nil
}

// AddJobSpec parses the cron expression text and schedules the job.
func (s *Scheduler) AddJobSpec(label string, j job.Job, spec string) (*TaskHandle, error) {
	expr, err := cronexpr.Parse(spec)
	if err != nil {
		return nil, err
	}
	return s.AddJob(label, j, expr)
}

// RemoveJob deletes the entry with the given id.
func (s *Scheduler) RemoveJob(id string) error {
	return s.st.remove(id)
}

// ClearJobs removes every entry.
func (s *Scheduler) ClearJobs() {
	s.st.clear()
}

// SetJobEnabled enables or disables the entry with the given id.
func (s *Scheduler) SetJobEnabled(id string, enabled bool) error {
	return s.st.setEnabled(id, enabled)
}

// JobsInfo returns a snapshot of every entry, sorted by id.
func (s *Scheduler) JobsInfo() []JobInfo {
	return s.st.infos()
}

// JobCount returns the number of scheduled entries.
func (s *Scheduler) JobCount() int {
	return s.st.count()
}

// IsRunning reports whether the tick loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start launches the tick loop. Entries keep their schedules across
// restarts.
func (s *Scheduler) Start(_ context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return schedkit.ErrSchedulerRunning
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.loopWG.Add(1)
	go s.loop(stopCh)

	s.logger.Info("scheduler started",
		slog.Duration("tick_interval", s.cfg.TickInterval),
		slog.Int("max_concurrent_jobs", s.cfg.MaxConcurrentJobs),
		slog.String("timezone", s.cfg.Timezone),
	)
	return nil
}

// Stop halts the tick loop. In-flight executions keep running; use Wait
// to drain them.
func (s *Scheduler) Stop(_ context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return schedkit.ErrSchedulerStopped
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.loopWG.Wait()
	s.logger.Info("scheduler stopped")
	return nil
}

// Wait blocks until every in-flight execution has finished.
func (s *Scheduler) Wait() {
	s.execWG.Wait()
}

// TriggerJob executes the entry with the given id once, synchronously
// and outside its schedule. The entry's next run time is not changed.
func (s *Scheduler) TriggerJob(ctx context.Context, id string) error {
	j, err := s.st.beginTrigger(id, s.clk.Now())
	if err != nil {
		return err
	}
	defer s.st.finish(id)

	s.logger.Info("job triggered",
		slog.String("job_id", id),
		slog.String("job_name", j.Name),
	)

	started := s.clk.Now()
	execErr := j.Execute(ctx)
	completed := s.clk.Now()

	res := job.Result{
		Success:     execErr == nil,
		Attempts:    1,
		StartedAt:   started,
		CompletedAt: completed,
		Duration:    completed.Sub(started),
	}
	if execErr != nil {
		res.Err = execErr.Error()
	}
	s.record(ctx, claimed{id: id, job: j}, res, execErr)
	return execErr
}

func (s *Scheduler) loop(stopCh chan struct{}) {
	defer s.loopWG.Done()

	ticker := s.clk.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			s.tick(s.clk.Now())
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	// Skipping far-overdue entries only makes sense relative to the
	// tick cadence: anything older than one tick was missed.
	var window time.Duration
	if !s.cfg.RunMissedJobs {
		window = s.cfg.TickInterval
	}

	for _, c := range s.st.claimDue(now, window) {
		s.execWG.Add(1)
		go s.runClaimed(c)
	}
}

func (s *Scheduler) runClaimed(c claimed) {
	defer s.execWG.Done()

	s.sem <- struct{}{}
	defer func() { <-s.sem }()
	defer s.st.finish(c.id)

	ctx := context.Background()
	started := s.clk.Now()

	var res job.Result
	handler := func(ctx context.Context) error {
		res = c.job.ExecuteWithRetries(ctx)
		if !res.Success {
			return errors.New(res.Err)
		}
		return nil
	}

	err := middleware.Chain(s.mws...)(ctx, &c.job, handler)
	if res.Attempts == 0 {
		// Middleware short-circuited before the handler ran; the record
		// still needs real timestamps.
		res.StartedAt = started
		res.CompletedAt = s.clk.Now()
		res.Duration = res.CompletedAt.Sub(res.StartedAt)
	}
	if err != nil {
		s.logger.Error("job execution failed",
			slog.String("job_id", c.id),
			slog.String("job_name", c.job.Name),
			slog.Int("attempts", res.Attempts),
			slog.String("error", err.Error()),
		)
	} else {
		s.logger.Info("job execution completed",
			slog.String("job_id", c.id),
			slog.String("job_name", c.job.Name),
			slog.Int("attempts", res.Attempts),
			slog.Duration("duration", res.Duration),
		)
	}

	s.record(ctx, c, res, err)
}

func (s *Scheduler) record(ctx context.Context, c claimed, res job.Result, err error) {
	if s.recorder == nil {
		return
	}
	rec := history.Record{
		JobID:       c.id,
		JobName:     c.job.Name,
		Success:     err == nil,
		Attempts:    res.Attempts,
		StartedAt:   res.StartedAt,
		CompletedAt: res.CompletedAt,
		Duration:    res.Duration,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	if recErr := s.recorder.Record(ctx, rec); recErr != nil {
		s.logger.Error("record execution history",
			slog.String("job_id", c.id),
			slog.String("error", recErr.Error()),
		)
	}
}
