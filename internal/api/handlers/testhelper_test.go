package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/hoanghai1803/readlist/internal/models"
	"github.com/hoanghai1803/readlist/internal/readinglist"
	"github.com/hoanghai1803/readlist/internal/storage"
)

// newTestService creates a reading list service over an in-memory SQLite
// store with migrations applied. It registers a cleanup function to close the
// database when the test completes.
func newTestService(t *testing.T) *readinglist.Service {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	store := readinglist.NewKVStore(storage.NewStore(db), "")
	return readinglist.NewService(store, readinglist.Options{})
}

// brokenStore fails every load and save.
type brokenStore struct{}

var errStoreDown = errors.New("store unavailable")

func (brokenStore) Load(context.Context) (models.ReadingList, int64, error) {
	return nil, 0, errStoreDown
}

func (brokenStore) Save(context.Context, models.ReadingList, int64) (int64, error) {
	return 0, errStoreDown
}

func newBrokenService() *readinglist.Service {
	return readinglist.NewService(brokenStore{}, readinglist.Options{MaxRetries: -1})
}

// mustAdd seeds an item through the service and returns it.
func mustAdd(t *testing.T, svc *readinglist.Service, title, url string) *models.ReadingListItem {
	t.Helper()
	item, err := svc.Add(context.Background(), title, url)
	if err != nil {
		t.Fatalf("seeding %q: %v", url, err)
	}
	if item == nil {
		t.Fatalf("seeding %q: item was ignored", url)
	}
	// IDs derive from the clock; keep consecutive items in distinct
	// milliseconds so date ordering is observable.
	time.Sleep(2 * time.Millisecond)
	return item
}

type stubTitles struct {
	title string
	err   error
}

func (s stubTitles) FetchTitle(context.Context, string) (string, error) {
	return s.title, s.err
}

type recordingOpener struct {
	opened []string
	err    error
}

func (o *recordingOpener) Open(_ context.Context, url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

type stubFeeds struct {
	tabs     []browser.Tab
	fetchErr error
}

func (s stubFeeds) FetchTabs(context.Context, string) ([]browser.Tab, error) {
	return s.tabs, s.fetchErr
}

func (s stubFeeds) ResolveTitles(_ context.Context, tabs []browser.Tab) ([]browser.Tab, error) {
	out := make([]browser.Tab, len(tabs))
	for i, tab := range tabs {
		if tab.Title == "" {
			tab.Title = tab.URL
		}
		out[i] = tab
	}
	return out, nil
}
