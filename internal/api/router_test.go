package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/hoanghai1803/readlist/internal/config"
	"github.com/hoanghai1803/readlist/internal/feeds"
	"github.com/hoanghai1803/readlist/internal/readinglist"
	"github.com/hoanghai1803/readlist/internal/storage"
)

type noopOpener struct{}

func (noopOpener) Open(_ context.Context, _ string) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	svc := readinglist.NewService(readinglist.NewKVStore(storage.NewStore(db), ""), readinglist.Options{})
	cfg := &config.Config{}
	cfg.ReadingList.DefaultSort = "date-added"

	var opener browser.Opener = noopOpener{}
	return NewRouter(svc, feeds.NewFetcher(feeds.Options{}), opener, cfg)
}

func TestRouterPopupFlow(t *testing.T) {
	router := newTestRouter(t)

	form := url.Values{"title": {"Go Blog"}, "url": {"https://go.dev/blog"}}
	r := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("POST /add got status %d, want %d", w.Code, http.StatusSeeOther)
	}

	r = httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("GET / got status %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Go Blog") {
		t.Error("expected added item on the popup page")
	}
}

func TestRouterAPIRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/reading-list", "", http.StatusOK},
		{http.MethodPost, "/api/reading-list", `{"title":"a","url":"https://a.example"}`, http.StatusCreated},
		{http.MethodPatch, "/api/reading-list/1/read", "", http.StatusOK},
		{http.MethodDelete, "/api/reading-list/1", "", http.StatusOK},
		{http.MethodDelete, "/api/reading-list/abc", "", http.StatusBadRequest},
		{http.MethodGet, "/api/reading-list/export?format=yaml", "", http.StatusOK},
		{http.MethodPut, "/api/reading-list", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.want {
				t.Errorf("got status %d, want %d; body: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
