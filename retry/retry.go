// Package retry provides pluggable backoff strategies for failed job
// attempts. Strategies are stateless and safe for concurrent use.
package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Strategy computes the delay before a retry attempt. Attempt 1 is the
// first retry after the initial failure.
type Strategy interface {
	Delay(attempt int) time.Duration
}

// Fixed waits the same interval before every retry.
type Fixed struct {
	Interval time.Duration
}

// NewFixed creates a fixed-interval strategy.
func NewFixed(interval time.Duration) Fixed {
	return Fixed{Interval: interval}
}

// Delay returns the fixed interval.
func (f Fixed) Delay(_ int) time.Duration { return f.Interval }

// Exponential doubles the delay with every attempt:
// Delay = Initial * 2^(attempt-1), capped at Max when Max > 0.
type Exponential struct {
	Initial time.Duration
	Max     time.Duration
}

// NewExponential creates an exponential strategy. A zero maxDelay leaves
// the delay uncapped.
func NewExponential(initial, maxDelay time.Duration) Exponential {
	return Exponential{Initial: initial, Max: maxDelay}
}

// Delay returns Initial * 2^(attempt-1), capped at Max.
func (e Exponential) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := time.Duration(float64(e.Initial) * math.Pow(2, float64(attempt-1)))
	if e.Max > 0 && d > e.Max {
		return e.Max
	}
	return d
}

// Jitter spreads another strategy's delay uniformly over [0, inner delay]
// so simultaneous retries do not fire in lockstep.
type Jitter struct {
	Inner Strategy
}

// WithJitter wraps a strategy with full jitter.
func WithJitter(inner Strategy) Jitter {
	return Jitter{Inner: inner}
}

// Delay returns a random duration in [0, Inner.Delay(attempt)].
func (j Jitter) Delay(attempt int) time.Duration {
	base := j.Inner.Delay(attempt)
	if base <= 0 {
		return 0
	}
	return time.Duration(rand.Float64() * float64(base)) //nolint:gosec // jitter intentionally uses non-crypto rand
}

// Default returns the backoff used when a job does not choose one:
// uncapped exponential starting at one second (1s, 2s, 4s, ...).
func Default() Strategy {
	return NewExponential(time.Second, 0)
}
