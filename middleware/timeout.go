package middleware

import (
	"context"
	"log/slog"

	"github.com/schedkit/schedkit/job"
)

// Timeout returns middleware that enforces the job's execution deadline
// on the whole handler chain. The job bounds each individual attempt on
// its own; this middleware additionally caps everything wrapped inside
// it, including retries and backoff waits.
func Timeout(logger *slog.Logger) Middleware {
	return func(ctx context.Context, j *job.Job, next Handler) error {
		if j.Metadata.Timeout > 0 {
			logger.Debug("job timeout set",
				slog.String("job_name", j.Name),
				slog.Duration("timeout", j.Metadata.Timeout),
			)
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, j.Metadata.Timeout)
			defer cancel()
		}
		return next(ctx)
	}
}
