package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"

	apperrors "tmalin/leadharvest/pkg/errors"
)

// Fetcher retrieves raw HTML for a URL. Implementations consume one
// rate-limiter slot per call and refuse URLs disallowed by robots.txt.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Close() error
}

// Options carries the shared fetch configuration for one source
type Options struct {
	Source    string
	RateLimit time.Duration
	UserAgent string
	Timeout   time.Duration
	// Retry budget for transient failures; 1 means a single attempt.
	MaxRetries int
	// Base wait for the exponential backoff between attempts.
	RetryBackoff time.Duration

	Limiter *SourceLimiter
	Robots  *RobotsGate
}

// HTTPFetcher fetches pages with a plain HTTP GET
type HTTPFetcher struct {
	opts   Options
	client *resty.Client
}

// NewHTTPFetcher creates an HTTP fetcher for one source
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.5")
	client.SetTimeout(opts.Timeout)
	if opts.MaxRetries > 1 {
		client.SetRetryCount(opts.MaxRetries - 1)
		client.SetRetryWaitTime(opts.RetryBackoff)
		client.SetRetryMaxWaitTime(opts.RetryBackoff * 8)
		client.AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() >= http.StatusInternalServerError ||
				r.StatusCode() == http.StatusTooManyRequests
		})
	}

	return &HTTPFetcher{opts: opts, client: client}
}

// Fetch retrieves the URL and returns its body as UTF-8 HTML
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.opts.Robots != nil {
		allowed, err := f.opts.Robots.Allowed(url)
		if err != nil {
			return "", apperrors.NewConfiguration(err.Error())
		}
		if !allowed {
			return "", apperrors.NewPolicyBlocked(f.opts.Source, url)
		}
	}

	if f.opts.Limiter != nil {
		if err := f.opts.Limiter.Wait(ctx, f.opts.Source, f.opts.RateLimit); err != nil {
			return "", apperrors.NewNetwork(f.opts.Source, url, err)
		}
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", apperrors.NewNetwork(f.opts.Source, url, err)
	}
	if resp.IsError() {
		return "", apperrors.NewHTTP(f.opts.Source, url, resp.StatusCode())
	}

	return decodeToUTF8(resp.Body(), resp.Header().Get("Content-Type"))
}

// Close implements Fetcher; plain HTTP holds no scoped resources
func (f *HTTPFetcher) Close() error {
	return nil
}

// decodeToUTF8 converts a response body to UTF-8 based on the Content-Type
// header and the body content itself.
func decodeToUTF8(body []byte, contentType string) (string, error) {
	encoding, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || name == "UTF-8" {
		return string(body), nil
	}

	reader := encoding.NewDecoder().Reader(bytes.NewReader(body))
	decoded, err := io.ReadAll(reader)
	if err != nil {
		// Fall back to the raw body rather than losing the page.
		return string(body), nil
	}
	return string(decoded), nil
}
