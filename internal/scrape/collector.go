package scrape

import (
	"log/slog"

	"github.com/dtnitsch/quotes-scraper/pkg/db"
	"github.com/dtnitsch/quotes-scraper/pkg/language"
	"github.com/dtnitsch/quotes-scraper/pkg/mapreduce"
	"github.com/dtnitsch/quotes-scraper/pkg/scraper"
)

// pageCollector observes scraped pages: it gathers per-page tag and author
// counts and, when a database is open, records pages and quotes in the run
// history. History writes are best effort and never abort the scrape.
type pageCollector struct {
	logger   *slog.Logger
	database *db.DB
	runID    int64
	detector *language.Detector

	pages        int
	position     int
	tagCounts    []map[string]int
	authorCounts []map[string]int
	langCounts   map[string]int
}

func newPageCollector(logger *slog.Logger, database *db.DB, runID int64, detector *language.Detector) *pageCollector {
	return &pageCollector{
		logger:     logger,
		database:   database,
		runID:      runID,
		detector:   detector,
		langCounts: make(map[string]int),
	}
}

func (pc *pageCollector) observe(page scraper.PageResult) {
	pc.pages++
	pc.tagCounts = append(pc.tagCounts, mapreduce.MapTags(page.Quotes))
	pc.authorCounts = append(pc.authorCounts, mapreduce.MapAuthors(page.Quotes))

	records := make([]db.QuoteRecord, 0, len(page.Quotes))
	for _, q := range page.Quotes {
		rec := db.QuoteRecord{
			RunID:    pc.runID,
			Position: pc.position,
			Text:     q.Text,
			Author:   q.Author,
			Tags:     q.Tags,
		}
		pc.position++

		if pc.detector != nil {
			if lang, ok := pc.detector.Detect(q.Text); ok {
				rec.Language = lang.Code
				rec.LanguageConfidence = lang.Confidence
				pc.langCounts[lang.Code]++
			}
		}
		records = append(records, rec)
	}

	if pc.database == nil {
		return
	}

	pageID, err := pc.database.InsertPage(db.PageRecord{
		RunID:       pc.runID,
		PageNumber:  page.Number,
		URL:         page.URL,
		ContentHash: page.ContentHash,
		SizeBytes:   int64(page.SizeBytes),
		QuoteCount:  page.QuoteCount,
		HasNext:     page.HasNext,
	})
	if err != nil {
		pc.logger.Warn("Failed to record page in history", "page", page.Number, "error", err)
		return
	}

	if len(records) == 0 {
		return
	}
	for i := range records {
		records[i].PageID = pageID
	}
	if err := pc.database.InsertQuotes(records); err != nil {
		pc.logger.Warn("Failed to record quotes in history", "page", page.Number, "error", err)
	}
}

func (pc *pageCollector) topTags(n int) []string {
	return mapreduce.TopN(mapreduce.Reduce(pc.tagCounts), n)
}

func (pc *pageCollector) topAuthors(n int) []string {
	return mapreduce.TopN(mapreduce.Reduce(pc.authorCounts), n)
}

func (pc *pageCollector) languages() []string {
	if len(pc.langCounts) == 0 {
		return nil
	}
	return mapreduce.TopN(pc.langCounts, len(pc.langCounts))
}
