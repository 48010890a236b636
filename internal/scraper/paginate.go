package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nextPageURL resolves the next-page link against the current page URL.
// Returns "" when no next link exists or the href cannot be resolved.
func nextPageURL(doc *goquery.Document, selectors SelectorList, pageURL string) string {
	link := selectFirst(doc.Selection, selectors)
	if link == nil {
		return ""
	}

	href, ok := link.Attr("href")
	if !ok {
		return ""
	}
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	next, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(next).String()
}
