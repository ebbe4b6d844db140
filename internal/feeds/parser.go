package feeds

import (
	"html"
	"regexp"
	"strings"

	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/mmcdole/gofeed"
)

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// parseFeedItems converts gofeed items into tabs. Items without a link are
// skipped; items without a title keep an empty title to be resolved later.
// Duplicate links within the feed are dropped.
func parseFeedItems(feed *gofeed.Feed, maxItems int) []browser.Tab {
	seen := make(map[string]bool)

	var tabs []browser.Tab
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true

		tabs = append(tabs, browser.Tab{
			Title: strings.TrimSpace(stripHTML(item.Title)),
			URL:   link,
		})
		if maxItems > 0 && len(tabs) >= maxItems {
			break
		}
	}

	return tabs
}

// stripHTML removes HTML tags from s and unescapes HTML entities.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return html.UnescapeString(clean)
}
