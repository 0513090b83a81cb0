package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/dtnitsch/quotes-scraper/models"
)

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// QuoteRow is one data row read back from a quotes CSV.
// Tags holds the raw list rendering, not a parsed slice.
type QuoteRow struct {
	Text   string
	Author string
	Tags   string
}

// WriteQuotes creates or truncates filePath and writes the header row followed
// by one row per quote. The file is closed on every path; a failed write
// leaves whatever was written on disk.
func (s *Storage) WriteQuotes(filePath string, quotes []models.Quote) (err error) {
	file, err := os.Create(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing output file: %w", closeErr)
		}
	}()

	return WriteQuotesTo(file, quotes)
}

// WriteQuotesTo writes quotes as CSV to w.
func WriteQuotesTo(w io.Writer, quotes []models.Quote) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(models.QuoteFields()); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	for i, q := range quotes {
		if err := writer.Write(q.Record()); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing CSV: %w", err)
	}
	return nil
}

// ReadQuotes reads a file produced by WriteQuotes.
func (s *Storage) ReadQuotes(filePath string) ([]QuoteRow, error) {
	file, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("error opening quotes file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(models.QuoteFields())

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("quotes file %s is empty", filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	if !slices.Equal(header, models.QuoteFields()) {
		return nil, fmt.Errorf("unexpected header %v in %s", header, filePath)
	}

	var rows []QuoteRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, QuoteRow{Text: record[0], Author: record[1], Tags: record[2]})
	}
	return rows, nil
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
