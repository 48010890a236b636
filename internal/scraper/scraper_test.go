package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "tmalin/leadharvest/pkg/errors"
)

// stubFetcher serves canned pages keyed by URL
type stubFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	html, ok := f.pages[url]
	if !ok {
		return "", apperrors.NewHTTP("test", url, 404)
	}
	return html, nil
}

func (f *stubFetcher) Close() error { return nil }

func testConfig() SourceConfig {
	return SourceConfig{
		SearchURLTemplate: "http://example.com/search?q={query}",
		RateLimit:         time.Millisecond,
		Selectors:         testSelectors,
	}
}

func listingPage(names []string, nextHref string) string {
	html := "<html><body>"
	for _, name := range names {
		html += `<div class="listing"><span class="name">` + name + `</span></div>`
	}
	if nextHref != "" {
		html += `<a class="next" href="` + nextHref + `">Next</a>`
	}
	return html + "</body></html>"
}

func TestStartURL(t *testing.T) {
	s := NewDirectoryScraper("test", testConfig(), &stubFetcher{})
	assert.Equal(t, "http://example.com/search?q=interior+designer", s.StartURL("interior designer"))

	cfg := testConfig()
	cfg.ListURL = "http://example.com/top-50"
	s = NewDirectoryScraper("test", cfg, &stubFetcher{})
	assert.Equal(t, "http://example.com/top-50", s.StartURL("ignored"))
}

func TestScrapePaginates(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"http://example.com/search?q=design": listingPage([]string{"Studio One", "Studio Two"}, "/page2"),
		"http://example.com/page2":           listingPage([]string{"Studio Three"}, ""),
	}}

	s := NewDirectoryScraper("test", testConfig(), fetcher)
	records, err := s.Scrape(context.Background(), "design", 0)

	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "Studio One", records[0].Name)
	assert.Equal(t, "Studio Three", records[2].Name)
}

func TestScrapeMaxResultsStopsMidPage(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"http://example.com/search?q=design": listingPage([]string{"Studio One", "Studio Two", "Studio Three"}, "/page2"),
	}}

	s := NewDirectoryScraper("test", testConfig(), fetcher)
	records, err := s.Scrape(context.Background(), "design", 2)

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	// The next page is never requested once the cap is hit.
	assert.Len(t, fetcher.calls, 1)
}

func TestScrapeCycleGuard(t *testing.T) {
	start := "http://example.com/search?q=design"
	fetcher := &stubFetcher{pages: map[string]string{
		start:                      listingPage([]string{"Studio One"}, "/page2"),
		"http://example.com/page2": listingPage([]string{"Studio Two"}, "/search?q=design"),
	}}

	s := NewDirectoryScraper("test", testConfig(), fetcher)
	records, err := s.Scrape(context.Background(), "design", 0)

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Len(t, fetcher.calls, 2)
}

func TestScrapeFirstPageFailure(t *testing.T) {
	start := "http://example.com/search?q=design"
	fetcher := &stubFetcher{errs: map[string]error{
		start: apperrors.NewHTTP("test", start, 500),
	}}

	s := NewDirectoryScraper("test", testConfig(), fetcher)
	records, err := s.Scrape(context.Background(), "design", 0)

	assert.Error(t, err)
	assert.Empty(t, records)
}

func TestScrapeLaterPageFailureKeepsPartial(t *testing.T) {
	start := "http://example.com/search?q=design"
	fetcher := &stubFetcher{
		pages: map[string]string{
			start: listingPage([]string{"Studio One", "Studio Two"}, "/page2"),
		},
		errs: map[string]error{
			"http://example.com/page2": apperrors.NewNetwork("test", "http://example.com/page2", assert.AnError),
		},
	}

	s := NewDirectoryScraper("test", testConfig(), fetcher)
	records, err := s.Scrape(context.Background(), "design", 0)

	assert.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestScrapePolicyBlockedPropagates(t *testing.T) {
	start := "http://example.com/search?q=design"
	fetcher := &stubFetcher{errs: map[string]error{
		start: apperrors.NewPolicyBlocked("test", start),
	}}

	s := NewDirectoryScraper("test", testConfig(), fetcher)
	_, err := s.Scrape(context.Background(), "design", 0)

	assert.True(t, apperrors.IsPolicyBlocked(err))
}

func TestScrapeEnrichesEmailFromWebsite(t *testing.T) {
	start := "http://example.com/search?q=design"
	fetcher := &stubFetcher{pages: map[string]string{
		start: `<html><body><div class="listing">` +
			`<span class="name">Studio One</span>` +
			`<a class="site" href="http://studio-one.example">site</a>` +
			`</div></body></html>`,
		"http://studio-one.example": `<html><body>Contact: hello@studio-one.example</body></html>`,
	}}

	cfg := testConfig()
	cfg.EnrichEmail = true
	s := NewDirectoryScraper("test", cfg, fetcher)
	records, err := s.Scrape(context.Background(), "design", 0)

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "hello@studio-one.example", records[0].Email)
}

func TestGetSourceConfig(t *testing.T) {
	cfg, err := GetSourceConfig("yelp")
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.Selectors.Listing)

	_, err = GetSourceConfig("nope")
	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
}
