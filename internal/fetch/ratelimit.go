package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SourceLimiter enforces a minimum delay between requests per source.
// The first request for a source never blocks.
type SourceLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewSourceLimiter creates a new per-source limiter
func NewSourceLimiter() *SourceLimiter {
	return &SourceLimiter{
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the source's minimum delay has elapsed since its
// previous request, or until the context is cancelled.
func (l *SourceLimiter) Wait(ctx context.Context, source string, minDelay time.Duration) error {
	if minDelay <= 0 {
		return nil
	}

	l.mu.Lock()
	limiter, ok := l.limiters[source]
	if !ok {
		// Burst of one: the initial token makes the first call free.
		limiter = rate.NewLimiter(rate.Every(minDelay), 1)
		l.limiters[source] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
