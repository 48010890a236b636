package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tmalin/leadharvest/config"
	"tmalin/leadharvest/internal/export"
	"tmalin/leadharvest/internal/scraper"
	"tmalin/leadharvest/internal/worker"
	"tmalin/leadharvest/logger"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadharvest",
		Short: "Scrape business contact details from directory websites",
		Long: "leadharvest crawls configured directory websites, extracts business\n" +
			"contact records, deduplicates them, and writes them to CSV.",
		SilenceUsage: true,
	}
	cmd.AddCommand(newScrapeCmd(), newMergeCmd())
	return cmd
}

func newScrapeCmd() *cobra.Command {
	cfg := config.LoadConfig()

	var (
		sources    []string
		query      string
		maxResults int
		output     string
		logLevel   string
		appendMode bool
		urlFlag    string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the configured directory sources",
		Long: "Scrape one or more directory sources and export deduplicated\n" +
			"contact records to CSV.\n\n" +
			"Available sources: " + strings.Join(scraper.SourceNames(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(logLevel)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if len(sources) == 0 {
				sources = scraper.SourceNames()
			}
			logger.Info("Starting scrape: sources=%s query=%q", strings.Join(sources, ","), query)

			w := worker.New(cfg)
			return w.Run(ctx, worker.Options{
				Sources:     sources,
				Query:       query,
				MaxResults:  maxResults,
				OutputPath:  output,
				Append:      appendMode,
				URLOverride: urlFlag,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&sources, "sources", "s", nil, "sources to scrape (default: all)")
	flags.StringVarP(&query, "query", "q", cfg.DefaultQuery, "search query")
	flags.IntVarP(&maxResults, "max-results", "m", cfg.DefaultMaxResults, "maximum records per source (0 = unlimited)")
	flags.StringVarP(&output, "output", "o", cfg.OutputFile, "output CSV path")
	flags.StringVarP(&logLevel, "log-level", "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVarP(&appendMode, "append", "a", false, "append to the output file instead of overwriting")
	flags.StringVarP(&urlFlag, "url", "u", "", "override the start URL (single source only)")
	return cmd
}

func newMergeCmd() *cobra.Command {
	var (
		dir      string
		output   string
		noDedupe bool
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Combine per-source result CSVs into one master file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(logLevel)

			total, written, err := export.MergeDir(dir, output, !noDedupe)
			if err != nil {
				return err
			}
			logger.Info("Merged %d rows into %s (%d after dedupe)", total, output, written)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&dir, "dir", "d", "output", "directory containing result CSVs")
	flags.StringVarP(&output, "output", "o", "output/master_results.csv", "master file path")
	flags.BoolVar(&noDedupe, "no-dedupe", false, "keep duplicate names")
	flags.StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	return cmd
}
