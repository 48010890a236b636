package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tmalin/leadharvest/internal/fetch"
	"tmalin/leadharvest/logger"
	apperrors "tmalin/leadharvest/pkg/errors"
)

// DirectoryScraper walks one directory source page by page, extracting
// contact records until the pages run out or maxResults is reached.
type DirectoryScraper struct {
	name    string
	config  SourceConfig
	fetcher fetch.Fetcher
	log     *logger.Logger
}

// NewDirectoryScraper creates a scraper for one configured source
func NewDirectoryScraper(name string, config SourceConfig, fetcher fetch.Fetcher) *DirectoryScraper {
	return &DirectoryScraper{
		name:    name,
		config:  config,
		fetcher: fetcher,
		log:     logger.ForSource(name),
	}
}

// Name returns the source identifier
func (s *DirectoryScraper) Name() string {
	return s.name
}

// StartURL builds the first page URL for a query. A configured ListURL
// wins over the search template; the query is ignored in that case.
func (s *DirectoryScraper) StartURL(query string) string {
	if s.config.ListURL != "" {
		return s.config.ListURL
	}
	return strings.ReplaceAll(s.config.SearchURLTemplate, "{query}", url.QueryEscape(query))
}

// Scrape collects up to maxResults records starting from the query's
// first result page. A failure on the first page aborts the source; a
// failure on a later page keeps what was already collected.
func (s *DirectoryScraper) Scrape(ctx context.Context, query string, maxResults int) ([]Record, error) {
	pageURL := s.StartURL(query)
	visited := make(map[string]bool)
	var records []Record

	for page := 1; pageURL != ""; page++ {
		if visited[pageURL] {
			s.log.Warn().Str("url", pageURL).Msg("Pagination loop detected, stopping")
			break
		}
		visited[pageURL] = true

		s.log.Debug().Int("page", page).Str("url", pageURL).Msg("Fetching page")

		html, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if len(records) == 0 || apperrors.IsPolicyBlocked(err) {
				return records, err
			}
			s.log.Warn().Err(err).Int("page", page).Msg("Page fetch failed, keeping partial results")
			return records, nil
		}

		doc, err := parseDocument(s.name, pageURL, html)
		if err != nil {
			if len(records) == 0 {
				return nil, err
			}
			return records, nil
		}

		listings := findListings(doc, s.config.Selectors.Listing)
		if listings == nil {
			s.log.Info().Int("page", page).Msg("No listings found on page")
			break
		}

		done := false
		listings.EachWithBreak(func(_ int, block *goquery.Selection) bool {
			record, ok := extractRecord(block, s.config.Selectors, pageURL)
			if !ok {
				return true
			}
			if s.config.EnrichEmail {
				enrichEmail(ctx, s.fetcher, &record)
			}
			records = append(records, record)
			if maxResults > 0 && len(records) >= maxResults {
				done = true
				return false
			}
			return true
		})

		s.log.Info().Int("page", page).Int("total", len(records)).Msg("Page scraped")

		if done {
			break
		}
		pageURL = nextPageURL(doc, s.config.Selectors.NextPage, pageURL)
	}

	return records, nil
}
