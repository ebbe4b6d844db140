// Package feeds pulls pages from RSS/Atom feeds and the web so they can be
// bulk-added to the reading list.
package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultMaxConcurrent = 10
	rateLimitDelay       = 1 * time.Second
)

// Options controls how the Fetcher talks to remote sites.
type Options struct {
	// Timeout bounds every HTTP request. Zero means 30 seconds.
	Timeout time.Duration

	// MaxConcurrent bounds parallel page fetches. Zero means 10.
	MaxConcurrent int

	// MaxItems caps how many entries are taken from a feed. Zero means all.
	MaxItems int
}

// Fetcher handles feed and page fetching with per-domain rate limiting and
// bounded concurrency.
type Fetcher struct {
	client        *http.Client
	timeout       time.Duration
	maxConcurrent int
	maxItems      int
	rateLimiter   map[string]time.Time // per-domain last request time
	mu            sync.Mutex           // protects rateLimiter
}

// NewFetcher creates a Fetcher with a custom HTTP client.
func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &userAgentTransport{
				base: http.DefaultTransport,
			},
		},
		timeout:       opts.Timeout,
		maxConcurrent: opts.MaxConcurrent,
		maxItems:      opts.MaxItems,
		rateLimiter:   make(map[string]time.Time),
	}
}

// userAgentTransport wraps an http.RoundTripper to inject a custom User-Agent
// header on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; readlist/1.0)")
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,*/*;q=0.8")
	return t.base.RoundTrip(req)
}

// FetchTabs parses the RSS/Atom feed at feedURL and returns one tab per entry.
func (f *Fetcher) FetchTabs(ctx context.Context, feedURL string) ([]browser.Tab, error) {
	f.waitForRateLimit(extractDomain(feedURL))

	fp := gofeed.NewParser()
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", feedURL, err)
	}

	tabs := parseFeedItems(feed, f.maxItems)
	slog.Info("fetched feed", "url", feedURL, "items", len(tabs))
	return tabs, nil
}

// ResolveTitles fills in blank titles by fetching each page, at most
// MaxConcurrent at a time. A page that cannot be fetched keeps its url as
// the title; individual failures never fail the batch.
func (f *Fetcher) ResolveTitles(ctx context.Context, tabs []browser.Tab) ([]browser.Tab, error) {
	out := make([]browser.Tab, len(tabs))
	copy(out, tabs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.maxConcurrent)

	for i := range out {
		if out[i].Title != "" {
			continue
		}
		g.Go(func() error {
			title, err := f.FetchTitle(ctx, out[i].URL)
			if err != nil || title == "" {
				slog.Warn("failed to resolve title",
					"url", out[i].URL,
					"error", err,
				)
				out[i].Title = out[i].URL
				return nil
			}
			out[i].Title = title
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolving titles: %w", err)
	}
	return out, nil
}

// waitForRateLimit enforces a minimum delay of 1 second between requests to
// the same domain. It blocks until the delay has elapsed.
func (f *Fetcher) waitForRateLimit(domain string) {
	f.mu.Lock()
	lastReq, ok := f.rateLimiter[domain]
	if ok {
		elapsed := time.Since(lastReq)
		if elapsed < rateLimitDelay {
			f.mu.Unlock()
			time.Sleep(rateLimitDelay - elapsed)
			f.mu.Lock()
		}
	}
	f.rateLimiter[domain] = time.Now()
	f.mu.Unlock()
}

// extractDomain parses a URL and returns its hostname. If parsing fails, it
// returns the raw URL as a fallback key.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
