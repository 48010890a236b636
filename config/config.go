package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Output configuration
	OutputFile string
	LogLevel   string

	// Scrape configuration
	DefaultQuery      string
	DefaultMaxResults int
	DefaultRateLimit  time.Duration

	// Fetch configuration
	HTTPTimeout  time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	UserAgent    string

	// Headless browser configuration
	ChromeTimeout  time.Duration
	ChromeHeadless bool
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	maxResults, _ := strconv.Atoi(getEnv("DEFAULT_MAX_RESULTS", "0"))
	rateLimitMs, _ := strconv.Atoi(getEnv("DEFAULT_RATE_LIMIT_MS", "1000"))
	httpTimeout, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "10"))
	maxRetries, _ := strconv.Atoi(getEnv("MAX_RETRIES", "3"))
	retryBackoffMs, _ := strconv.Atoi(getEnv("RETRY_BACKOFF_MS", "500"))
	chromeTimeout, _ := strconv.Atoi(getEnv("CHROME_TIMEOUT_SECONDS", "30"))
	chromeHeadless, _ := strconv.ParseBool(getEnv("CHROME_HEADLESS", "true"))

	return &Config{
		OutputFile:        getEnv("OUTPUT_FILE", "output/designers.csv"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DefaultQuery:      getEnv("DEFAULT_QUERY", "interior designer"),
		DefaultMaxResults: maxResults,
		DefaultRateLimit:  time.Duration(rateLimitMs) * time.Millisecond,
		HTTPTimeout:       time.Duration(httpTimeout) * time.Second,
		MaxRetries:        maxRetries,
		RetryBackoff:      time.Duration(retryBackoffMs) * time.Millisecond,
		UserAgent:         getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		ChromeTimeout:     time.Duration(chromeTimeout) * time.Second,
		ChromeHeadless:    chromeHeadless,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
