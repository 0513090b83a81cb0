package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dtnitsch/quotes-scraper/models"
	"github.com/dtnitsch/quotes-scraper/pkg/caching"
	"github.com/dtnitsch/quotes-scraper/pkg/fetcher"
	"github.com/dtnitsch/quotes-scraper/pkg/parser"
)

func quoteBlock(text, author string, tags ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="quote"><span class="text">%s</span><span>by <small class="author">%s</small></span><div class="tags">`, text, author)
	for _, tag := range tags {
		fmt.Fprintf(&sb, `<a class="tag" href="/tag/%s/">%s</a>`, tag, tag)
	}
	sb.WriteString(`</div></div>`)
	return sb.String()
}

func listingPage(hasNext bool, blocks ...string) string {
	next := ""
	if hasNext {
		next = `<li class="next"><a href="#">Next</a></li>`
	}
	return `<html><body>` + strings.Join(blocks, "\n") + `<ul class="pager">` + next + `</ul></body></html>`
}

// siteServer serves the given pages at /page/<n> and records request paths.
type siteServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []string
}

func newSiteServer(t *testing.T, pages map[string]string) *siteServer {
	t.Helper()
	s := &siteServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		s.mu.Unlock()

		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *siteServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func newScraper(baseURL string, opts ...Option) *Scraper {
	opts = append([]Option{WithBaseURL(baseURL + "/")}, opts...)
	return New(fetcher.NewFetcher(), parser.NewParser(models.Selectors{}), opts...)
}

func TestRun_SinglePage(t *testing.T) {
	srv := newSiteServer(t, map[string]string{
		"/page/1": listingPage(false,
			quoteBlock("q1", "A", "x"),
			quoteBlock("q2", "B"),
			quoteBlock("q3", "C", "y", "z"),
		),
	})

	quotes, err := newScraper(srv.URL).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if got := srv.Requests(); len(got) != 1 || got[0] != "/page/1" {
		t.Errorf("requests = %v, want [/page/1]", got)
	}

	want := []string{"q1", "q2", "q3"}
	if len(quotes) != len(want) {
		t.Fatalf("got %d quotes, want %d", len(quotes), len(want))
	}
	for i, text := range want {
		if quotes[i].Text != text {
			t.Errorf("quote %d text = %q, want %q", i, quotes[i].Text, text)
		}
	}
	if !quotes[2].Equal(models.Quote{Text: "q3", Author: "C", Tags: models.Tags{"y", "z"}}) {
		t.Errorf("quote 2 = %+v", quotes[2])
	}
}

func TestRun_TwoPages(t *testing.T) {
	srv := newSiteServer(t, map[string]string{
		"/page/1": listingPage(true, quoteBlock("p1-a", "A"), quoteBlock("p1-b", "B")),
		"/page/2": listingPage(false, quoteBlock("p2-a", "C")),
	})

	var observed []PageResult
	quotes, err := newScraper(srv.URL, WithObserver(func(r PageResult) {
		observed = append(observed, r)
	})).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	gotReqs := srv.Requests()
	if len(gotReqs) != 2 || gotReqs[0] != "/page/1" || gotReqs[1] != "/page/2" {
		t.Errorf("requests = %v, want [/page/1 /page/2]", gotReqs)
	}

	var texts []string
	for _, q := range quotes {
		texts = append(texts, q.Text)
	}
	if strings.Join(texts, ",") != "p1-a,p1-b,p2-a" {
		t.Errorf("quotes = %v, want page 1 then page 2", texts)
	}

	if len(observed) != 2 {
		t.Fatalf("observer called %d times, want 2", len(observed))
	}
	if observed[0].Number != 1 || !observed[0].HasNext || observed[0].QuoteCount != 2 {
		t.Errorf("page 1 result = %+v", observed[0])
	}
	if observed[1].Number != 2 || observed[1].HasNext || observed[1].QuoteCount != 1 {
		t.Errorf("page 2 result = %+v", observed[1])
	}
	if observed[1].URL != srv.URL+"/page/2" {
		t.Errorf("page 2 URL = %q", observed[1].URL)
	}
	if observed[0].ContentHash == "" || observed[0].ContentHash == observed[1].ContentHash {
		t.Errorf("unexpected content hashes %q, %q", observed[0].ContentHash, observed[1].ContentHash)
	}
}

func TestRun_ExtractionFailureAborts(t *testing.T) {
	srv := newSiteServer(t, map[string]string{
		"/page/1": listingPage(true, quoteBlock("fine", "A")),
		"/page/2": listingPage(false, `<div class="quote"><span class="text">no author</span></div>`),
	})

	quotes, err := newScraper(srv.URL).Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, parser.ErrElementNotFound) {
		t.Errorf("error %v does not wrap ErrElementNotFound", err)
	}
	if quotes != nil {
		t.Errorf("expected no quotes on failure, got %d", len(quotes))
	}
}

func TestRun_HTTPErrorAborts(t *testing.T) {
	srv := newSiteServer(t, map[string]string{
		"/page/1": listingPage(true, quoteBlock("fine", "A")),
	})

	quotes, err := newScraper(srv.URL).Run(context.Background())
	var httpErr *fetcher.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *fetcher.HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", httpErr.StatusCode)
	}
	if quotes != nil {
		t.Errorf("expected no quotes on failure, got %d", len(quotes))
	}
	if got := srv.Requests(); len(got) != 2 {
		t.Errorf("requests = %v, want no retry after failure", got)
	}
}

func TestRun_Cancelled(t *testing.T) {
	srv := newSiteServer(t, map[string]string{
		"/page/1": listingPage(false, quoteBlock("q", "A")),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newScraper(srv.URL).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := srv.Requests(); len(got) != 0 {
		t.Errorf("requests = %v, want none", got)
	}
}

type countingSource struct {
	pages map[string]string
	calls []string
}

func (c *countingSource) GetHtmlBytes(ctx context.Context, url string) ([]byte, error) {
	c.calls = append(c.calls, url)
	body, ok := c.pages[url]
	if !ok {
		return nil, fmt.Errorf("no page at %s", url)
	}
	return []byte(body), nil
}

func TestRun_DefaultBaseURL(t *testing.T) {
	src := &countingSource{pages: map[string]string{
		DefaultBaseURL + "page/1": listingPage(false, quoteBlock("q", "A")),
	}}

	quotes, err := New(src, parser.NewParser(models.Selectors{})).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(quotes) != 1 {
		t.Errorf("got %d quotes, want 1", len(quotes))
	}
	if len(src.calls) != 1 || src.calls[0] != "https://quotes.toscrape.com/page/1" {
		t.Errorf("calls = %v", src.calls)
	}
}

func TestCachedSource(t *testing.T) {
	base := "http://example.test/"
	src := &countingSource{pages: map[string]string{
		base + "page/1": listingPage(true, quoteBlock("a", "A")),
		base + "page/2": listingPage(false, quoteBlock("b", "B")),
	}}

	cache, err := caching.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}
	s := New(NewCachedSource(src, cache, slog.New(slog.NewTextHandler(io.Discard, nil))), parser.NewParser(models.Selectors{}), WithBaseURL(base))

	first, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() failed: %v", err)
	}
	second, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() failed: %v", err)
	}

	if len(src.calls) != 2 {
		t.Errorf("source called %d times, want 2 (second run from cache)", len(src.calls))
	}
	if len(first) != 2 || len(second) != 2 || !first[1].Equal(second[1]) {
		t.Errorf("cached run differs: %+v vs %+v", first, second)
	}
}

func TestStateString(t *testing.T) {
	if StateFetching.String() != "fetching" || StateDone.String() != "done" {
		t.Errorf("unexpected state names %s, %s", StateFetching, StateDone)
	}
}
