package retry

import (
	"context"
	"time"

	"mod-sync/core/errdefs"
)

// Policy bounds a remote operation.
type Policy struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// Timeout applies to each attempt individually. Zero means no per-attempt limit.
	Timeout time.Duration
	// Backoff is the pause before each retry.
	Backoff time.Duration
}

// Once is the default remote policy: one retry, ten seconds per attempt.
var Once = Policy{Attempts: 2, Timeout: 10 * time.Second, Backoff: 500 * time.Millisecond}

// Do runs fn until it succeeds, returns a non-retryable error, or the attempts
// are used up. Each attempt receives its own deadline derived from ctx.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Backoff):
			}
		}

		lastErr = runAttempt(ctx, p.Timeout, fn)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || !errdefs.IsRetryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func runAttempt(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx)
}
