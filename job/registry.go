package job

import (
	"fmt"
	"sort"
	"sync"

	"github.com/schedkit/schedkit"
)

// Registry is a thread-safe collection of jobs keyed by name.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]Job)}
}

// Register adds a job. It fails if a job with the same name is already
// registered.
func (r *Registry) Register(j Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[j.Name]; ok {
		return fmt.Errorf("job %q: %w", j.Name, schedkit.ErrJobAlreadyExists)
	}
	r.jobs[j.Name] = j
	return nil
}

// Get returns the job with the given name.
func (r *Registry) Get(name string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[name]
	return j, ok
}

// GetByCategory returns all jobs in the given category, sorted by name.
func (r *Registry) GetByCategory(category string) []Job {
	return r.collect(func(j Job) bool { return j.Metadata.Category == category })
}

// GetByTag returns all jobs carrying the given tag, sorted by name.
func (r *Registry) GetByTag(tag string) []Job {
	return r.collect(func(j Job) bool {
		for _, t := range j.Metadata.Tags {
			if t == tag {
				return true
			}
		}
		return false
	})
}

// GetByPriority returns all jobs sorted by descending priority. Jobs
// with equal priority keep their name order.
func (r *Registry) GetByPriority() []Job {
	jobs := r.collect(func(Job) bool { return true })
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].Metadata.Priority > jobs[k].Metadata.Priority
	})
	return jobs
}

// Remove deletes the job with the given name.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[name]; !ok {
		return fmt.Errorf("job %q: %w", name, schedkit.ErrJobNotFound)
	}
	delete(r.jobs, name)
	return nil
}

// Names returns the registered job names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered jobs.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// Clear removes every job.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = make(map[string]Job)
}

func (r *Registry) collect(keep func(Job) bool) []Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	var jobs []Job
	for _, name := range names {
		if j := r.jobs[name]; keep(j) {
			jobs = append(jobs, j)
		}
	}
	return jobs
}
