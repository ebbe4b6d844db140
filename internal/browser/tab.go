// Package browser models the host capabilities the reading list consumes:
// looking up the active tab and opening a url in a new tab.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Tab is the title and url of a browser page.
type Tab struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TabSource reports the page the user is currently looking at.
type TabSource interface {
	ActiveTab(ctx context.Context) (Tab, error)
}

// StaticTab is a TabSource for a tab reported by the client, e.g. the
// extension posting the focused page.
type StaticTab Tab

// ActiveTab returns the tab itself.
func (t StaticTab) ActiveTab(context.Context) (Tab, error) {
	return Tab(t), nil
}

// TitleFetcher looks up the title of the page at a url.
type TitleFetcher interface {
	FetchTitle(ctx context.Context, url string) (string, error)
}

// TitleResolver wraps a TabSource and fills in a missing title by fetching
// the page. If the page cannot be fetched the url doubles as the title.
type TitleResolver struct {
	Source  TabSource
	Fetcher TitleFetcher
}

// ActiveTab implements TabSource.
func (r TitleResolver) ActiveTab(ctx context.Context) (Tab, error) {
	tab, err := r.Source.ActiveTab(ctx)
	if err != nil {
		return Tab{}, fmt.Errorf("looking up active tab: %w", err)
	}

	tab.Title = strings.TrimSpace(tab.Title)
	tab.URL = strings.TrimSpace(tab.URL)
	if tab.Title != "" || tab.URL == "" || r.Fetcher == nil {
		return tab, nil
	}

	title, err := r.Fetcher.FetchTitle(ctx, tab.URL)
	if err != nil || strings.TrimSpace(title) == "" {
		slog.Warn("could not resolve page title, using url", "url", tab.URL, "error", err)
		tab.Title = tab.URL
		return tab, nil
	}
	tab.Title = strings.TrimSpace(title)
	return tab, nil
}
