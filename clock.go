package schedkit

import (
	"context"
	"time"
)

// Clock supplies the current instant, a cancellable sleep, and tickers.
// It is the scheduler's only environmental dependency; substituting a
// virtual clock makes dispatch and retry timing deterministic in tests.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time

	// Sleep suspends for d or until ctx is done, whichever comes first.
	// It returns ctx.Err() when the context ended the sleep early.
	Sleep(ctx context.Context, d time.Duration) error

	// NewTicker returns a ticker firing every d.
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock returns the Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct{ t *time.Ticker }

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }
