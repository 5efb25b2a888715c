// Package retry re-runs transient platform calls with exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/lookerci/contentcheck/internal/faults"
)

// Policy configures Do.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// Default retries three times starting at one second.
var Default = Policy{MaxRetries: 3, BaseDelay: time.Second}

// Do calls fn until it succeeds, returns a non-retryable error, or the policy
// is exhausted. Only faults.IsRetryable errors are retried.
func Do(ctx context.Context, p Policy, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !faults.IsRetryable(lastErr) {
			return lastErr
		}

		if attempt < p.MaxRetries {
			backoff := p.BaseDelay * time.Duration(1<<uint(attempt))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}
