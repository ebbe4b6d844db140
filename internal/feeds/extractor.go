package feeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// browserHeaders sets browser-like request headers so sites that check Accept
// or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; readlist/1.0)")
}

// FetchTitle fetches the page at pageURL and returns its readable title. The
// site name is used when the page has no title of its own.
func (f *Fetcher) FetchTitle(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.waitForRateLimit(extractDomain(pageURL))

	article, err := readability.FromURL(pageURL, f.timeout, browserHeaders)
	if err != nil {
		return "", fmt.Errorf("readability extraction from %q: %w", pageURL, err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = strings.TrimSpace(article.SiteName)
	}
	return title, nil
}
