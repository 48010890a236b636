package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSourceLimiterFirstCallNeverBlocks(t *testing.T) {
	limiter := NewSourceLimiter()

	start := time.Now()
	err := limiter.Wait(context.Background(), "yelp", time.Second)
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestSourceLimiterEnforcesDelay(t *testing.T) {
	limiter := NewSourceLimiter()
	delay := 150 * time.Millisecond

	assert.NoError(t, limiter.Wait(context.Background(), "yelp", delay))

	start := time.Now()
	assert.NoError(t, limiter.Wait(context.Background(), "yelp", delay))
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestSourceLimiterPerSourceClocks(t *testing.T) {
	limiter := NewSourceLimiter()
	delay := time.Second

	assert.NoError(t, limiter.Wait(context.Background(), "yelp", delay))

	// A different source has its own clock and does not block.
	start := time.Now()
	assert.NoError(t, limiter.Wait(context.Background(), "houzz", delay))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestSourceLimiterContextCancel(t *testing.T) {
	limiter := NewSourceLimiter()
	delay := 5 * time.Second

	assert.NoError(t, limiter.Wait(context.Background(), "yelp", delay))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := limiter.Wait(ctx, "yelp", delay)
	assert.Error(t, err)
}

func TestSourceLimiterZeroDelay(t *testing.T) {
	limiter := NewSourceLimiter()
	for i := 0; i < 10; i++ {
		assert.NoError(t, limiter.Wait(context.Background(), "yelp", 0))
	}
}
