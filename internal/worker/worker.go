package worker

import (
	"context"

	"tmalin/leadharvest/config"
	"tmalin/leadharvest/internal/dedupe"
	"tmalin/leadharvest/internal/export"
	"tmalin/leadharvest/internal/fetch"
	"tmalin/leadharvest/internal/scraper"
	"tmalin/leadharvest/logger"
	apperrors "tmalin/leadharvest/pkg/errors"
)

// Options controls one scrape run
type Options struct {
	Sources    []string
	Query      string
	MaxResults int
	OutputPath string
	Append     bool
	// URLOverride replaces the configured start URL; valid only with a
	// single source.
	URLOverride string
}

// Worker runs scrapers for the requested sources and exports the
// combined results.
type Worker struct {
	cfg     *config.Config
	limiter *fetch.SourceLimiter
	robots  *fetch.RobotsGate
	log     *logger.Logger
}

// New creates a worker sharing one rate limiter and robots cache across
// all sources in the run.
func New(cfg *config.Config) *Worker {
	return &Worker{
		cfg:     cfg,
		limiter: fetch.NewSourceLimiter(),
		robots:  fetch.NewRobotsGate(cfg.UserAgent),
		log:     logger.ForComponent("worker"),
	}
}

// Run scrapes every requested source in order and writes the results.
// Configuration problems and output IO failures abort the run; fetch
// and extraction failures only skip the affected source.
func (w *Worker) Run(ctx context.Context, opts Options) error {
	configs := make(map[string]scraper.SourceConfig, len(opts.Sources))
	for _, name := range opts.Sources {
		sc, err := scraper.GetSourceConfig(name)
		if err != nil {
			return err
		}
		configs[name] = sc
	}

	if opts.URLOverride != "" {
		if len(opts.Sources) != 1 {
			return apperrors.NewConfiguration("--url requires exactly one source")
		}
		sc := configs[opts.Sources[0]]
		sc.ListURL = opts.URLOverride
		configs[opts.Sources[0]] = sc
	}

	var combined []scraper.Record
	for _, name := range opts.Sources {
		sc := configs[name]
		records := w.scrapeSource(ctx, name, sc, opts)

		if sc.OutputFile != "" {
			exporter := export.NewCSVExporter(sc.OutputFile)
			if err := exporter.Export(dedupe.Deduplicate(records), opts.Append); err != nil {
				return err
			}
			continue
		}
		combined = append(combined, records...)
	}

	unique := dedupe.Deduplicate(combined)
	w.log.Info().Int("scraped", len(combined)).Int("unique", len(unique)).Msg("Run finished")

	if len(combined) == 0 {
		return nil
	}
	exporter := export.NewCSVExporter(opts.OutputPath)
	return exporter.Export(unique, opts.Append)
}

// scrapeSource runs one source end to end, tolerating per-source
// failures.
func (w *Worker) scrapeSource(ctx context.Context, name string, sc scraper.SourceConfig, opts Options) []scraper.Record {
	log := logger.ForSource(name)

	fetcher := w.newFetcher(name, sc)
	defer fetcher.Close()

	s := scraper.NewDirectoryScraper(name, sc, fetcher)
	records, err := s.Scrape(ctx, opts.Query, opts.MaxResults)
	switch {
	case apperrors.IsPolicyBlocked(err):
		log.Warn().Err(err).Msg("Blocked by robots.txt, skipping source")
	case err != nil:
		log.Error().Err(err).Msg("Scrape failed")
	}
	log.Info().Int("records", len(records)).Msg("Source done")
	return records
}

func (w *Worker) newFetcher(name string, sc scraper.SourceConfig) fetch.Fetcher {
	rateLimit := sc.RateLimit
	if rateLimit <= 0 {
		rateLimit = w.cfg.DefaultRateLimit
	}
	fopts := fetch.Options{
		Source:       name,
		RateLimit:    rateLimit,
		UserAgent:    w.cfg.UserAgent,
		Timeout:      w.cfg.HTTPTimeout,
		MaxRetries:   w.cfg.MaxRetries,
		RetryBackoff: w.cfg.RetryBackoff,
		Limiter:      w.limiter,
		Robots:       w.robots,
	}

	if sc.RequiresJS {
		ready := sc.ReadySelector
		if ready == "" && len(sc.Selectors.Listing) > 0 {
			ready = sc.Selectors.Listing[0]
		}
		return fetch.NewChromeFetcher(fopts, ready, w.cfg.ChromeTimeout, w.cfg.ChromeHeadless)
	}
	return fetch.NewHTTPFetcher(fopts)
}
