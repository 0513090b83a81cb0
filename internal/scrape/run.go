package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/quotes-scraper/pkg/caching"
	"github.com/dtnitsch/quotes-scraper/pkg/db"
	"github.com/dtnitsch/quotes-scraper/pkg/fetcher"
	"github.com/dtnitsch/quotes-scraper/pkg/language"
	"github.com/dtnitsch/quotes-scraper/pkg/parser"
	"github.com/dtnitsch/quotes-scraper/pkg/scraper"
	"github.com/dtnitsch/quotes-scraper/pkg/storage"
)

// Execute performs one scrape run: every page is fetched and extracted, then
// the full quote list is written to the output CSV. The CSV is only written
// when the whole scrape succeeded.
func Execute(ctx context.Context, logger *slog.Logger, opts *Options) (*RunSummary, error) {
	startTime := time.Now()
	cfg := opts.Config

	summary := &RunSummary{
		Status:     db.StatusRunning,
		BaseURL:    cfg.BaseURL,
		OutputPath: cfg.OutputPath,
		CacheDir:   cfg.CacheDir,
	}

	var source scraper.PageSource = fetcher.NewFetcher(fetcher.WithUserAgent(cfg.UserAgent))
	if cfg.CacheDir != "" {
		cache, err := caching.NewCache(cfg.CacheDir, opts.MaxAge)
		if err != nil {
			return nil, err
		}
		source = scraper.NewCachedSource(source, cache, logger)
		logger.Info("Page cache enabled", "dir", cfg.CacheDir, "max_age", cache.TTL())
	}

	var database *db.DB
	if !opts.NoDB {
		database = openHistory(logger, cfg.DBPath, summary, cfg.BaseURL, cfg.OutputPath)
		if database != nil {
			defer database.Close()
		}
	}

	var detector *language.Detector
	if cfg.DetectLanguage {
		detector = language.NewDetector()
	}

	collector := newPageCollector(logger, database, summary.RunID, detector)
	s := scraper.New(source, parser.NewParser(cfg.Selectors),
		scraper.WithBaseURL(cfg.BaseURL),
		scraper.WithLogger(logger),
		scraper.WithObserver(collector.observe),
	)

	fail := func(err error) (*RunSummary, error) {
		if database != nil {
			if dbErr := database.FinishRun(summary.RunID, db.StatusFailed, collector.pages, 0, err.Error()); dbErr != nil {
				logger.Warn("Failed to record run failure", "run_id", summary.RunID, "error", dbErr)
			}
		}
		return nil, err
	}

	quotes, err := s.Run(ctx)
	if err != nil {
		return fail(fmt.Errorf("scrape failed: %w", err))
	}

	store := &storage.Storage{}
	if err := store.WriteQuotes(cfg.OutputPath, quotes); err != nil {
		return fail(fmt.Errorf("failed to write %s: %w", cfg.OutputPath, err))
	}
	logger.Info("Quotes written", "path", cfg.OutputPath, "quotes", len(quotes))

	if stats, err := store.GetFileStats(cfg.OutputPath); err == nil {
		summary.FileSizeBytes = stats.SizeBytes
	}

	if database != nil {
		if err := database.FinishRun(summary.RunID, db.StatusSuccess, collector.pages, len(quotes), ""); err != nil {
			logger.Warn("Failed to record run completion", "run_id", summary.RunID, "error", err)
		}
	}

	summary.Status = db.StatusSuccess
	summary.Pages = collector.pages
	summary.Quotes = len(quotes)
	summary.TopTags = collector.topTags(opts.TopN)
	summary.TopAuthors = collector.topAuthors(opts.TopN)
	summary.Languages = collector.languages()
	summary.TotalTimeSeconds = time.Since(startTime).Seconds()
	return summary, nil
}

// openHistory opens the run history and records the run start. Any failure
// is logged and nil is returned; the scrape then runs without history.
func openHistory(logger *slog.Logger, dbPath string, summary *RunSummary, baseURL, outputPath string) *db.DB {
	database, err := db.Open(dbPath)
	if err != nil {
		logger.Warn("Failed to open run history", "db", dbPath, "error", err)
		return nil
	}

	runID, err := database.StartRun(baseURL, outputPath)
	if err != nil {
		logger.Warn("Failed to record run start", "db", dbPath, "error", err)
		_ = database.Close()
		return nil
	}

	summary.RunID = runID
	logger.Info("Run started", "run_id", runID, "db", database.Path())
	return database
}
