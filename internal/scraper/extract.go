package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	apperrors "tmalin/leadharvest/pkg/errors"
)

// Social-media profile hosts that never count as a business website.
var socialHosts = []string{
	"instagram.com", "facebook.com", "twitter.com",
	"linkedin.com", "pinterest.com", "youtube.com",
}

// parseDocument builds a goquery document from fetched HTML
func parseDocument(source, url, html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, apperrors.NewExtraction(source, url, "failed to parse HTML", err)
	}
	return doc, nil
}

// findListings returns the listing blocks matched by the first selector
// in the list that matches anything.
func findListings(doc *goquery.Document, selectors SelectorList) *goquery.Selection {
	for _, sel := range selectors {
		if listings := doc.Find(sel); listings.Length() > 0 {
			return listings
		}
	}
	return nil
}

// selectFirst returns the first element within the block matched by any
// of the candidate selectors.
func selectFirst(block *goquery.Selection, selectors SelectorList) *goquery.Selection {
	for _, sel := range selectors {
		if found := block.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

func extractText(block *goquery.Selection, selectors SelectorList) string {
	if found := selectFirst(block, selectors); found != nil {
		return strings.TrimSpace(found.Text())
	}
	return ""
}

func extractAttr(block *goquery.Selection, selectors SelectorList, attr string) string {
	if found := selectFirst(block, selectors); found != nil {
		if val, ok := found.Attr(attr); ok {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// extractRecord maps one listing block onto a Record. Returns false
// when the block yields no usable name; such blocks are skipped without
// error.
func extractRecord(block *goquery.Selection, sel Selectors, pageURL string) (Record, bool) {
	record := Record{
		Name:      extractText(block, sel.Name),
		Phone:     extractText(block, sel.Phone),
		Address:   extractText(block, sel.Address),
		City:      extractText(block, sel.City),
		State:     extractText(block, sel.State),
		ZipCode:   extractText(block, sel.ZipCode),
		Specialty: extractText(block, sel.Specialty),
		SourceURL: pageURL,
	}

	website, sawHref := extractWebsite(block, sel.Website, pageURL)
	record.Website = website
	if record.Website == "" && !sawHref {
		record.Website = extractText(block, sel.Website)
	}

	record.Email = extractAttr(block, sel.Email, "href")
	record.Email = strings.TrimPrefix(record.Email, "mailto:")
	if record.Email == "" {
		record.Email = extractText(block, sel.Email)
	}

	record.Normalize()
	if record.Name == "" {
		return Record{}, false
	}
	return record, true
}

// extractWebsite picks the listing's website link. External links win
// over same-site ones and social-media profiles are skipped entirely;
// when only same-site links exist (directory redirect URLs), the first
// one is kept. Relative hrefs resolve against the page URL. The second
// return value reports whether any href-bearing element matched.
func extractWebsite(block *goquery.Selection, selectors SelectorList, pageURL string) (string, bool) {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	sawHref := false
	var fallback string
	for _, sel := range selectors {
		var external string
		block.Find(sel).EachWithBreak(func(_ int, link *goquery.Selection) bool {
			href, ok := link.Attr("href")
			if !ok {
				return true
			}
			sawHref = true
			resolved := resolveHref(base, href)
			if resolved == "" {
				return true
			}
			if isSocialLink(resolved) {
				return true
			}
			if fallback == "" {
				fallback = resolved
			}
			if isExternalLink(resolved, base) {
				external = resolved
				return false
			}
			return true
		})
		if external != "" {
			return external, sawHref
		}
		if fallback != "" {
			return fallback, sawHref
		}
	}
	return "", sawHref
}

// resolveHref turns an href into an absolute http(s) URL, resolving
// relative paths against the page URL.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		parsed = base.ResolveReference(parsed)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	return parsed.String()
}

func isSocialLink(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, social := range socialHosts {
		if host == social || strings.HasSuffix(host, "."+social) {
			return true
		}
	}
	return false
}

func isExternalLink(rawURL string, base *url.URL) bool {
	if base == nil {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return stripWWW(parsed.Hostname()) != stripWWW(base.Hostname())
}

func stripWWW(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
