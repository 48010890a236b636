package scraper

import (
	"context"
	"regexp"
	"strings"

	"tmalin/leadharvest/internal/fetch"
)

var pageEmailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Placeholder addresses that sites embed in templates and scripts.
var ignoredEmailDomains = []string{"example.com", "sentry.io"}

// enrichEmail fetches a record's website and pulls the first plausible
// contact email out of the page. Fetch failures are tolerated; the
// record simply stays without an email.
func enrichEmail(ctx context.Context, fetcher fetch.Fetcher, record *Record) {
	if record.Email != "" || record.Website == "" {
		return
	}

	html, err := fetcher.Fetch(ctx, record.Website)
	if err != nil {
		return
	}

	for _, candidate := range pageEmailPattern.FindAllString(html, 10) {
		if email := NormalizeEmail(candidate); email != "" && usableEmail(email) {
			record.Email = email
			return
		}
	}
}

func usableEmail(email string) bool {
	local := email[:strings.Index(email, "@")]
	if strings.HasPrefix(local, "noreply") || strings.HasPrefix(local, "no-reply") {
		return false
	}
	for _, domain := range ignoredEmailDomains {
		if strings.HasSuffix(email, "@"+domain) {
			return false
		}
	}
	return true
}
