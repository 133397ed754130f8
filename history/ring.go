package history

import (
	"context"
	"sync"
)

// ring keeps the most recent records in a fixed-size in-memory buffer.
type ring struct {
	mu   sync.Mutex
	recs []Record
	next int
	full bool
}

// Ring creates an in-memory recorder holding the most recent capacity
// records. Older records are overwritten.
func Ring(capacity int) Recorder {
	if capacity < 1 {
		capacity = 1
	}
	return &ring{recs: make([]Record, capacity)}
}

func (r *ring) Record(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recs[r.next] = rec
	r.next++
	if r.next == len(r.recs) {
		r.next = 0
		r.full = true
	}
	return nil
}

func (r *ring) Recent(_ context.Context, limit int) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.next
	if r.full {
		size = len(r.recs)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]Record, 0, limit)
	idx := r.next - 1
	for len(out) < limit {
		if idx < 0 {
			idx = len(r.recs) - 1
		}
		out = append(out, r.recs[idx])
		idx--
	}
	return out, nil
}

func (r *ring) Close() error { return nil }
