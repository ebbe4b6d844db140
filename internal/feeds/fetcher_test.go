package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hoanghai1803/readlist/internal/browser"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Test Feed</title>
  <link>https://example.com</link>
  <description>test</description>
  <item>
    <title>First Post</title>
    <link>https://example.com/first</link>
  </item>
  <item>
    <title>Second Post</title>
    <link>https://example.com/second</link>
  </item>
  <item>
    <title>No link</title>
  </item>
</channel>
</rss>`

const testArticle = `<!DOCTYPE html>
<html>
<head><title>Readable Page</title></head>
<body>
<article>
<h1>Readable Page</h1>
<p>This is a long enough paragraph of text for the readability extractor to
consider it the main content of the page, with several sentences, commas, and
plenty of words so that the scoring picks it up without any trouble at all.</p>
<p>A second paragraph adds more weight to the article body, again with more
than enough characters, punctuation, and words to be treated as content.</p>
</article>
</body>
</html>`

func TestFetchTabs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testRSS)
	}))
	defer srv.Close()

	f := NewFetcher(Options{Timeout: 5 * time.Second})
	tabs, err := f.FetchTabs(context.Background(), srv.URL+"/feed.xml")
	if err != nil {
		t.Fatalf("FetchTabs() error: %v", err)
	}

	if len(tabs) != 2 {
		t.Fatalf("got %d tabs, want 2", len(tabs))
	}
	if tabs[0].Title != "First Post" || tabs[0].URL != "https://example.com/first" {
		t.Errorf("tabs[0] = %+v", tabs[0])
	}
}

func TestFetchTabs_BadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	f := NewFetcher(Options{Timeout: 5 * time.Second})
	if _, err := f.FetchTabs(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for failing feed, got nil")
	}
}

func TestFetchTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, testArticle)
	}))
	defer srv.Close()

	f := NewFetcher(Options{Timeout: 5 * time.Second})
	title, err := f.FetchTitle(context.Background(), srv.URL+"/post")
	if err != nil {
		t.Fatalf("FetchTitle() error: %v", err)
	}
	if !strings.Contains(title, "Readable Page") {
		t.Errorf("title = %q, want it to contain %q", title, "Readable Page")
	}
}

func TestResolveTitles(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/broken" {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, testArticle)
	}))
	defer srv.Close()

	in := []browser.Tab{
		{Title: "Already Titled", URL: srv.URL + "/titled"},
		{URL: srv.URL + "/broken"},
	}

	f := NewFetcher(Options{Timeout: 5 * time.Second, MaxConcurrent: 1})
	out, err := f.ResolveTitles(context.Background(), in)
	if err != nil {
		t.Fatalf("ResolveTitles() error: %v", err)
	}

	if out[0].Title != "Already Titled" {
		t.Errorf("out[0].Title = %q, want unchanged", out[0].Title)
	}
	if out[1].Title != srv.URL+"/broken" {
		t.Errorf("out[1].Title = %q, want url fallback", out[1].Title)
	}
	if in[1].Title != "" {
		t.Error("ResolveTitles modified its input slice")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1 (titled tab must not be fetched)", n)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://blog.example.com/feed", "blog.example.com"},
		{"http://localhost:8080/x", "localhost"},
		{"::bad", "::bad"},
	}
	for _, tt := range tests {
		if got := extractDomain(tt.input); got != tt.want {
			t.Errorf("extractDomain(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
