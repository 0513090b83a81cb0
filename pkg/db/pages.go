package db

import (
	"encoding/json"
	"fmt"
	"time"
)

// PageRecord is one fetched listing page.
type PageRecord struct {
	PageID      int64
	RunID       int64
	PageNumber  int
	URL         string
	ContentHash string
	SizeBytes   int64
	QuoteCount  int
	HasNext     bool
	FetchedAt   time.Time
}

// QuoteRecord is one stored quote.
type QuoteRecord struct {
	QuoteID            int64
	RunID              int64
	PageID             int64
	Position           int
	Text               string
	Author             string
	Tags               []string
	Language           string
	LanguageConfidence float64
}

// InsertPage records a fetched page and returns its page_id.
func (db *DB) InsertPage(p PageRecord) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO pages (run_id, page_number, url, content_hash, size_bytes, quote_count, has_next)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.RunID, p.PageNumber, p.URL, p.ContentHash, p.SizeBytes, p.QuoteCount, p.HasNext)
	if err != nil {
		return 0, fmt.Errorf("failed to insert page: %w", err)
	}

	pageID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get page ID: %w", err)
	}
	return pageID, nil
}

// InsertQuotes stores quotes for a page in a single transaction.
func (db *DB) InsertQuotes(quotes []QuoteRecord) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback() // Rollback error less important than insert error
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO quotes (run_id, page_id, position, text, author, tags, language, language_confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare quote insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range quotes {
		tags := q.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}

		if _, err := stmt.Exec(q.RunID, q.PageID, q.Position, q.Text, q.Author, string(tagsJSON),
			NewNullString(q.Language), NewNullFloat64(q.LanguageConfidence)); err != nil {
			return fmt.Errorf("failed to insert quote %d: %w", q.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quotes: %w", err)
	}
	return nil
}

// GetRunPages returns the pages of a run in page order.
func (db *DB) GetRunPages(runID int64) ([]PageRecord, error) {
	rows, err := db.Query(`
		SELECT page_id, run_id, page_number, url, content_hash, size_bytes, quote_count, has_next, fetched_at
		FROM pages
		WHERE run_id = ?
		ORDER BY page_number
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run pages: %w", err)
	}
	defer rows.Close()

	var pages []PageRecord
	for rows.Next() {
		var p PageRecord
		if err := rows.Scan(&p.PageID, &p.RunID, &p.PageNumber, &p.URL, &p.ContentHash,
			&p.SizeBytes, &p.QuoteCount, &p.HasNext, &p.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetRunQuotes returns the quotes of a run in scrape order.
func (db *DB) GetRunQuotes(runID int64) ([]QuoteRecord, error) {
	rows, err := db.Query(`
		SELECT quote_id, run_id, page_id, position, text, author, tags,
		       COALESCE(language, ''), COALESCE(language_confidence, 0)
		FROM quotes
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run quotes: %w", err)
	}
	defer rows.Close()

	var quotes []QuoteRecord
	for rows.Next() {
		var q QuoteRecord
		var tagsJSON string
		if err := rows.Scan(&q.QuoteID, &q.RunID, &q.PageID, &q.Position, &q.Text, &q.Author,
			&tagsJSON, &q.Language, &q.LanguageConfidence); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &q.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for quote %d: %w", q.QuoteID, err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
