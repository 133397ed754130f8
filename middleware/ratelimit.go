package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/schedkit/schedkit/job"
)

// RateLimit returns middleware that throttles executions across every job
// it wraps to perSecond executions with the given burst. The handler call
// blocks until a token is available or the context is cancelled.
func RateLimit(perSecond float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(ctx context.Context, _ *job.Job, next Handler) error {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		return next(ctx)
	}
}
