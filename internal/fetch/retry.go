package fetch

import (
	"context"
	"time"
)

// withRetry runs fn up to attempts times, waiting backoff*n^2 after the
// nth failure. Returns the last error once the budget is spent or the
// context is cancelled mid-wait.
func withRetry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff * time.Duration(attempt*attempt)):
		}
	}
	return err
}
