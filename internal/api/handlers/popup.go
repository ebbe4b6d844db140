package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/hoanghai1803/readlist/internal/readinglist"
	"github.com/hoanghai1803/readlist/internal/view"
)

// Popup handles GET /. It renders the reading list filtered by "q" and
// ordered by "sort".
func Popup(svc *readinglist.Service, defaultSort string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, sortKey := listState(r, defaultSort)
		renderPopup(w, r, svc, query, sortKey, "", http.StatusOK)
	}
}

// PopupAdd handles the add form.
func PopupAdd(svc *readinglist.Service, defaultSort string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		query, sortKey := listState(r, defaultSort)

		if _, err := svc.Add(r.Context(), r.PostForm.Get("title"), r.PostForm.Get("url")); err != nil {
			slog.Error("failed to add to reading list", "error", err)
			renderPopup(w, r, svc, query, sortKey, "Could not save the page. Please try again.", http.StatusInternalServerError)
			return
		}
		redirectToPopup(w, r, query, sortKey)
	}
}

// PopupAddCurrent handles the add-current-page form. The form carries the
// page url and, optionally, its title.
func PopupAddCurrent(svc *readinglist.Service, titles browser.TitleFetcher, defaultSort string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		query, sortKey := listState(r, defaultSort)

		src := browser.TitleResolver{
			Source:  browser.StaticTab{Title: r.PostForm.Get("title"), URL: r.PostForm.Get("url")},
			Fetcher: titles,
		}
		if _, err := svc.AddCurrentPage(r.Context(), src); err != nil {
			slog.Error("failed to add current page", "error", err)
			renderPopup(w, r, svc, query, sortKey, "Could not save the current page. Please try again.", http.StatusInternalServerError)
			return
		}
		redirectToPopup(w, r, query, sortKey)
	}
}

// PopupToggle handles the mark read/unread buttons.
func PopupToggle(svc *readinglist.Service, defaultSort string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		query, sortKey := listState(r, defaultSort)

		id, err := parseID(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if _, err := svc.ToggleRead(r.Context(), id); err != nil {
			slog.Error("failed to toggle read", "id", id, "error", err)
			renderPopup(w, r, svc, query, sortKey, "Could not update the item. Please try again.", http.StatusInternalServerError)
			return
		}
		redirectToPopup(w, r, query, sortKey)
	}
}

// PopupDelete handles the delete buttons.
func PopupDelete(svc *readinglist.Service, defaultSort string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		query, sortKey := listState(r, defaultSort)

		id, err := parseID(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if _, err := svc.Delete(r.Context(), id); err != nil {
			slog.Error("failed to remove from reading list", "id", id, "error", err)
			renderPopup(w, r, svc, query, sortKey, "Could not delete the item. Please try again.", http.StatusInternalServerError)
			return
		}
		redirectToPopup(w, r, query, sortKey)
	}
}

// listState returns the search term and sort key of the current view. Form
// values win over the query string.
func listState(r *http.Request, defaultSort string) (string, string) {
	query := r.FormValue("q")
	sortKey := r.FormValue("sort")
	if sortKey == "" {
		sortKey = defaultSort
	}
	return query, sortKey
}

func redirectToPopup(w http.ResponseWriter, r *http.Request, query, sortKey string) {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if sortKey != "" {
		v.Set("sort", sortKey)
	}
	target := "/"
	if len(v) > 0 {
		target += "?" + v.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// renderPopup renders the page with status. A non-empty message is shown as
// an error banner. If the list itself cannot be loaded, the banner is shown
// over an empty list.
func renderPopup(w http.ResponseWriter, r *http.Request, svc *readinglist.Service, query, sortKey, message string, status int) {
	items, err := svc.Query(r.Context(), query, sortKey)
	if err != nil {
		slog.Error("failed to load reading list", "error", err)
		items = nil
		status = http.StatusInternalServerError
		if message == "" {
			message = "Could not load the reading list."
		}
	}

	page := view.NewPage(items, query, sortKey)
	page.Error = message

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		slog.Error("failed to render popup", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
