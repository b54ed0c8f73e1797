// Package httputil provides retry helpers for the engine's outbound HTTP
// calls.
package httputil

import (
	"context"
	"time"

	"github.com/deckgrid/deckgrid/pkg/errors"
)

// Retry executes fn up to attempts times with exponential backoff. Only
// transient failures (NETWORK_ERROR or TIMEOUT codes) are retried; other
// errors return immediately. The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() on cancellation.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is a convenience wrapper around [Retry] with defaults of
// 3 attempts and a 1 second initial delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.Is(err, errors.ErrCodeNetwork) || errors.Is(err, errors.ErrCodeTimeout)
}
