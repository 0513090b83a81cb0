package parser

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/quotes-scraper/models"
)

// ErrElementNotFound is returned when a required element is absent from a quote block.
var ErrElementNotFound = errors.New("element not found")

// MissingElementError names the selector that matched nothing.
type MissingElementError struct {
	Field    string
	Selector string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("quote %s: no element matches %q", e.Field, e.Selector)
}

func (e *MissingElementError) Unwrap() error {
	return ErrElementNotFound
}

// Default selectors for quotes.toscrape.com markup.
const (
	DefaultQuoteSelector  = ".quote"
	DefaultTextSelector   = ".text"
	DefaultAuthorSelector = ".author"
	DefaultTagSelector    = ".tag"
	DefaultNextSelector   = ".next"
)

// Page is the result of parsing a single listing page.
type Page struct {
	Quotes  []models.Quote
	HasNext bool
}

type Parser struct {
	selectors models.Selectors
}

// NewParser returns a Parser using sel, with empty fields replaced by defaults.
func NewParser(sel models.Selectors) *Parser {
	if sel.Quote == "" {
		sel.Quote = DefaultQuoteSelector
	}
	if sel.Text == "" {
		sel.Text = DefaultTextSelector
	}
	if sel.Author == "" {
		sel.Author = DefaultAuthorSelector
	}
	if sel.Tag == "" {
		sel.Tag = DefaultTagSelector
	}
	if sel.Next == "" {
		sel.Next = DefaultNextSelector
	}
	return &Parser{selectors: sel}
}

// Selectors returns the effective selectors.
func (p *Parser) Selectors() models.Selectors {
	return p.selectors
}

// ParsePage parses raw HTML and extracts every quote block in document order.
// The first block that fails extraction aborts the page.
func (p *Parser) ParsePage(html []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return p.ParseDocument(doc)
}

// ParseDocument is ParsePage for an already parsed document.
func (p *Parser) ParseDocument(doc *goquery.Document) (*Page, error) {
	page := &Page{}

	var extractErr error
	doc.Find(p.selectors.Quote).EachWithBreak(func(i int, s *goquery.Selection) bool {
		quote, err := p.ExtractQuote(s)
		if err != nil {
			extractErr = fmt.Errorf("quote block %d: %w", i, err)
			return false
		}
		page.Quotes = append(page.Quotes, quote)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	page.HasNext = p.HasNextPage(doc.Selection)
	return page, nil
}

// ExtractQuote builds a Quote from one quote block.
// Text and author are taken verbatim from the first matching element.
func (p *Parser) ExtractQuote(s *goquery.Selection) (models.Quote, error) {
	text, ok := SelectOne(s, p.selectors.Text)
	if !ok {
		return models.Quote{}, &MissingElementError{Field: "text", Selector: p.selectors.Text}
	}
	author, ok := SelectOne(s, p.selectors.Author)
	if !ok {
		return models.Quote{}, &MissingElementError{Field: "author", Selector: p.selectors.Author}
	}

	tags := models.Tags{}
	s.Find(p.selectors.Tag).Each(func(i int, tag *goquery.Selection) {
		tags = append(tags, tag.Text())
	})

	return models.Quote{
		Text:   text.Text(),
		Author: author.Text(),
		Tags:   tags,
	}, nil
}

// HasNextPage reports whether the pagination marker is present.
func (p *Parser) HasNextPage(s *goquery.Selection) bool {
	return s.Find(p.selectors.Next).Length() > 0
}

// SelectOne returns the first descendant of s matching selector.
// The boolean is false when nothing matches.
func SelectOne(s *goquery.Selection, selector string) (*goquery.Selection, bool) {
	found := s.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return found, true
}
