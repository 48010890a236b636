package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	apperrors "tmalin/leadharvest/pkg/errors"
)

// ChromeFetcher renders script-driven pages in a headless browser. The
// browser lives for the duration of one source's scrape; Close must be
// called on every exit path.
type ChromeFetcher struct {
	opts Options

	// Selector to wait for before taking the DOM; "body" when empty.
	ReadySelector string
	// Per-navigation deadline.
	NavTimeout time.Duration
	Headless   bool

	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	browserCtx  context.Context
	cancelCtx   context.CancelFunc
}

// NewChromeFetcher creates a headless-browser fetcher for one source
func NewChromeFetcher(opts Options, readySelector string, navTimeout time.Duration, headless bool) *ChromeFetcher {
	return &ChromeFetcher{
		opts:          opts,
		ReadySelector: readySelector,
		NavTimeout:    navTimeout,
		Headless:      headless,
	}
}

// Fetch navigates to the URL, waits for the readiness selector, and
// returns the rendered DOM as HTML.
func (f *ChromeFetcher) Fetch(ctx context.Context, url string) (string, error) {
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

	if f.browserCtx == nil {
		f.start(ctx)
	}

	ready := f.ReadySelector
	if ready == "" {
		ready = "body"
	}

	var html string
	err := withRetry(ctx, f.opts.MaxRetries, f.opts.RetryBackoff, func() error {
		navCtx, cancel := context.WithTimeout(f.browserCtx, f.NavTimeout)
		defer cancel()

		return chromedp.Run(navCtx,
			chromedp.Navigate(url),
			chromedp.WaitReady(ready, chromedp.ByQuery),
			chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		)
	})
	if err != nil {
		return "", apperrors.NewNetwork(f.opts.Source, url, err)
	}
	return html, nil
}

func (f *ChromeFetcher) start(ctx context.Context) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(f.opts.UserAgent),
	)
	f.allocCtx, f.cancelAlloc = chromedp.NewExecAllocator(ctx, opts...)
	f.browserCtx, f.cancelCtx = chromedp.NewContext(f.allocCtx)
}

// Close releases the browser process
func (f *ChromeFetcher) Close() error {
	if f.cancelCtx != nil {
		f.cancelCtx()
		f.cancelCtx = nil
	}
	if f.cancelAlloc != nil {
		f.cancelAlloc()
		f.cancelAlloc = nil
	}
	f.browserCtx = nil
	return nil
}
