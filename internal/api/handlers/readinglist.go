package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/hoanghai1803/readlist/internal/models"
	"github.com/hoanghai1803/readlist/internal/readinglist"
	"github.com/hoanghai1803/readlist/internal/view"
)

// FeedSource fetches the entries of a feed and fills in missing titles.
type FeedSource interface {
	FetchTabs(ctx context.Context, feedURL string) ([]browser.Tab, error)
	ResolveTitles(ctx context.Context, tabs []browser.Tab) ([]browser.Tab, error)
}

// GetReadingList handles GET /api/reading-list. The "q" query parameter
// filters by title or url and "sort" selects the order ("date-added" or
// "title"); defaultSort applies when sort is absent. With view=rows the
// response is display rows instead of raw items.
func GetReadingList(svc *readinglist.Service, defaultSort string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := r.URL.Query()

		sortKey := query.Get("sort")
		if sortKey == "" {
			sortKey = defaultSort
		}

		items, err := svc.Query(ctx, query.Get("q"), sortKey)
		if err != nil {
			slog.Error("failed to get reading list", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get reading list")
			return
		}

		if query.Get("view") == "rows" {
			writeJSON(w, http.StatusOK, view.Rows(items))
			return
		}
		if items == nil {
			items = []models.ReadingListItem{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// AddToReadingList handles POST /api/reading-list. A blank title or url is
// ignored rather than rejected.
func AddToReadingList(svc *readinglist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		item, err := svc.Add(ctx, body.Title, body.URL)
		if err != nil {
			slog.Error("failed to add to reading list", "url", body.URL, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to add to reading list")
			return
		}
		if item == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}

		writeJSON(w, http.StatusCreated, item)
	}
}

// AddCurrentPage handles POST /api/reading-list/current. The client reports
// the active tab; a missing title is looked up by fetching the page.
func AddCurrentPage(svc *readinglist.Service, titles browser.TitleFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var tab browser.Tab
		if err := json.NewDecoder(r.Body).Decode(&tab); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		src := browser.TitleResolver{Source: browser.StaticTab(tab), Fetcher: titles}
		item, err := svc.AddCurrentPage(ctx, src)
		if err != nil {
			slog.Error("failed to add current page", "url", tab.URL, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to add current page")
			return
		}
		if item == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}

		writeJSON(w, http.StatusCreated, item)
	}
}

// ToggleReadingListItem handles PATCH /api/reading-list/{id}/read. It flips
// the read flag; an unknown id is ignored.
func ToggleReadingListItem(svc *readinglist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		item, err := svc.ToggleRead(ctx, id)
		if err != nil {
			slog.Error("failed to toggle read", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update reading list item")
			return
		}
		if item == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}

		writeJSON(w, http.StatusOK, item)
	}
}

// DeleteReadingListItem handles DELETE /api/reading-list/{id}. It removes
// a reading list item by its ID; an unknown id is ignored.
func DeleteReadingListItem(svc *readinglist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		removed, err := svc.Delete(ctx, id)
		if err != nil {
			slog.Error("failed to remove from reading list", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to remove from reading list")
			return
		}
		if !removed {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

// OpenReadingListItem handles POST /api/reading-list/{id}/open. It opens the
// item's url in the default browser of the machine running the server.
func OpenReadingListItem(svc *readinglist.Service, opener browser.Opener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		item, err := svc.Open(ctx, id, opener)
		if err != nil {
			slog.Error("failed to open reading list item", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to open reading list item")
			return
		}
		if item == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "opened"})
	}
}

// ImportFeed handles POST /api/reading-list/import. It adds every entry of
// an RSS/Atom feed that is not already on the list.
func ImportFeed(svc *readinglist.Service, feeds FeedSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			FeedURL string `json:"feed_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		body.FeedURL = strings.TrimSpace(body.FeedURL)
		parsed, err := url.ParseRequestURI(body.FeedURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			writeError(w, http.StatusBadRequest, "feed_url must be a valid HTTP or HTTPS URL")
			return
		}

		tabs, err := feeds.FetchTabs(ctx, body.FeedURL)
		if err != nil {
			slog.Warn("failed to fetch feed", "url", body.FeedURL, "error", err)
			writeError(w, http.StatusUnprocessableEntity, "Could not fetch feed from URL")
			return
		}

		tabs, err = feeds.ResolveTitles(ctx, tabs)
		if err != nil {
			slog.Warn("failed to resolve feed titles", "url", body.FeedURL, "error", err)
			writeError(w, http.StatusUnprocessableEntity, "Could not resolve feed entries")
			return
		}

		added, err := svc.Import(ctx, tabs)
		if err != nil {
			slog.Error("failed to import feed", "url", body.FeedURL, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to import feed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]int{"added": added, "offered": len(tabs)})
	}
}

// ExportReadingList handles GET /api/reading-list/export?format=json|yaml.
func ExportReadingList(svc *readinglist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		format := r.URL.Query().Get("format")
		if format == "" {
			format = readinglist.FormatJSON
		}

		var contentType string
		switch format {
		case readinglist.FormatJSON:
			contentType = "application/json"
		case readinglist.FormatYAML:
			contentType = "application/yaml"
		default:
			writeError(w, http.StatusBadRequest, `format must be "json" or "yaml"`)
			return
		}

		var buf strings.Builder
		if err := svc.Export(ctx, &buf, format); err != nil {
			slog.Error("failed to export reading list", "format", format, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to export reading list")
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="reading-list.`+format+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, buf.String()); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("failed to write export", "error", err)
		}
	}
}
