package llm

import (
	"context"
	"fmt"
	"time"
)

// bounded-attempt retry policy with exponential delay between attempts
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:  2,
		BaseDelay: 500 * time.Millisecond,
	}
}

// runs fn up to p.Attempts times, doubling the delay after each failure.
// the returned error wraps the last attempt's error so exhaustion is
// distinguishable from a single permanent failure.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := max(p.Attempts, 1)
	delay := p.BaseDelay

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
