// Package scraper walks a paginated quote listing from page 1 until the
// pagination marker disappears.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dtnitsch/quotes-scraper/internal/common"
	"github.com/dtnitsch/quotes-scraper/models"
	"github.com/dtnitsch/quotes-scraper/pkg/fetcher"
	"github.com/dtnitsch/quotes-scraper/pkg/parser"
)

// DefaultBaseURL is the site scraped when no other base URL is configured.
const DefaultBaseURL = "https://quotes.toscrape.com/"

// State is the pagination driver state.
type State int

const (
	StateFetching State = iota
	StateDone
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PageSource returns the raw body of a page.
type PageSource interface {
	GetHtmlBytes(ctx context.Context, url string) ([]byte, error)
}

// PageResult describes one successfully scraped page.
type PageResult struct {
	Number      int
	URL         string
	Quotes      []models.Quote
	QuoteCount  int
	HasNext     bool
	ContentHash string
	SizeBytes   int
}

// PageObserver is called after each page has been fetched and extracted.
type PageObserver func(PageResult)

type Scraper struct {
	baseURL  string
	source   PageSource
	parser   *parser.Parser
	logger   *slog.Logger
	observer PageObserver
}

// Option configures a Scraper.
type Option func(*Scraper)

func WithBaseURL(baseURL string) Option {
	return func(s *Scraper) {
		s.baseURL = baseURL
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

func WithObserver(observer PageObserver) Option {
	return func(s *Scraper) {
		s.observer = observer
	}
}

// New returns a Scraper reading pages from source and extracting with p.
func New(source PageSource, p *parser.Parser, opts ...Option) *Scraper {
	s := &Scraper{
		baseURL: DefaultBaseURL,
		source:  source,
		parser:  p,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run fetches page 1, 2, 3 ... in order and returns every quote in scrape
// order. It stops after the first page without a next marker. Any fetch or
// extraction error aborts the run and no quotes are returned.
func (s *Scraper) Run(ctx context.Context) ([]models.Quote, error) {
	var allQuotes []models.Quote
	pageNum := 1
	state := StateFetching

	for state == StateFetching {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scrape cancelled before page %d: %w", pageNum, err)
		}

		pageURL, err := fetcher.PageURL(s.baseURL, pageNum)
		if err != nil {
			return nil, err
		}

		s.logger.Info("Fetching page", "page", pageNum, "url", pageURL)
		body, err := s.source.GetHtmlBytes(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}

		page, err := s.parser.ParsePage(body)
		if err != nil {
			return nil, fmt.Errorf("page %d (%s): %w", pageNum, pageURL, err)
		}
		allQuotes = append(allQuotes, page.Quotes...)

		s.logger.Info("Page scraped", "page", pageNum, "quotes", len(page.Quotes), "has_next", page.HasNext)
		if s.observer != nil {
			s.observer(PageResult{
				Number:      pageNum,
				URL:         pageURL,
				Quotes:      page.Quotes,
				QuoteCount:  len(page.Quotes),
				HasNext:     page.HasNext,
				ContentHash: common.ContentHash(body),
				SizeBytes:   len(body),
			})
		}

		if page.HasNext {
			pageNum++
		} else {
			state = StateDone
		}
	}

	s.logger.Info("Scrape finished", "pages", pageNum, "quotes", len(allQuotes))
	return allQuotes, nil
}
