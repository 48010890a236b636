package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "output/designers.csv", cfg.OutputFile)
	assert.Equal(t, "interior designer", cfg.DefaultQuery)
	assert.Equal(t, 0, cfg.DefaultMaxResults)
	assert.Equal(t, time.Second, cfg.DefaultRateLimit)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBackoff)
	assert.True(t, cfg.ChromeHeadless)
	assert.NotEmpty(t, cfg.UserAgent)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("OUTPUT_FILE", "out/test.csv")
	t.Setenv("DEFAULT_RATE_LIMIT_MS", "2500")
	t.Setenv("MAX_RETRIES", "5")

	cfg := LoadConfig()

	assert.Equal(t, "out/test.csv", cfg.OutputFile)
	assert.Equal(t, 2500*time.Millisecond, cfg.DefaultRateLimit)
	assert.Equal(t, 5, cfg.MaxRetries)
}
