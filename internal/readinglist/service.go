// Package readinglist owns every change to the reading list and the
// projections shown to the user.
//
// Each operation reads the full list, transforms it in memory and writes it
// back. Writes are serialized inside the process by a mutex and across
// processes by the store's version check, so concurrent changes cannot
// overwrite each other.
package readinglist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/hoanghai1803/readlist/internal/models"
	"github.com/hoanghai1803/readlist/internal/storage"
)

const defaultMaxRetries = 3

// Options configures a Service.
type Options struct {
	// MaxRetries is how many times a write is retried from a fresh read after
	// losing a version race. Zero means 3; negative disables retries.
	MaxRetries int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Service is the reading list controller.
type Service struct {
	store      Store
	mu         sync.Mutex // serializes read-modify-write cycles
	maxRetries int
	now        func() time.Time
}

// NewService returns a Service backed by store.
func NewService(store Store, opts Options) *Service {
	switch {
	case opts.MaxRetries == 0:
		opts.MaxRetries = defaultMaxRetries
	case opts.MaxRetries < 0:
		opts.MaxRetries = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:      store,
		maxRetries: opts.MaxRetries,
		now:        opts.Now,
	}
}

// Add appends a new unread item. Blank title or url is ignored: the result is
// nil and nothing is written.
func (s *Service) Add(ctx context.Context, title, url string) (*models.ReadingListItem, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" || url == "" {
		return nil, nil
	}

	var added models.ReadingListItem
	err := s.mutate(ctx, func(list models.ReadingList) (models.ReadingList, bool) {
		now := s.timestamp()
		added = models.ReadingListItem{
			ID:        nextID(list, now),
			Title:     title,
			URL:       url,
			DateAdded: now,
		}
		return append(list, added), true
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// AddCurrentPage adds the page reported by src.
func (s *Service) AddCurrentPage(ctx context.Context, src browser.TabSource) (*models.ReadingListItem, error) {
	tab, err := src.ActiveTab(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving current page: %w", err)
	}
	return s.Add(ctx, tab.Title, tab.URL)
}

// ToggleRead flips the read flag of the item with the given id and returns
// the updated item. An unknown id returns nil without writing.
func (s *Service) ToggleRead(ctx context.Context, id int64) (*models.ReadingListItem, error) {
	var toggled *models.ReadingListItem
	err := s.mutate(ctx, func(list models.ReadingList) (models.ReadingList, bool) {
		toggled = nil
		i := indexOf(list, id)
		if i < 0 {
			return list, false
		}
		list[i].Read = !list[i].Read
		item := list[i]
		toggled = &item
		return list, true
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// Delete removes the item with the given id and reports whether it existed.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := s.mutate(ctx, func(list models.ReadingList) (models.ReadingList, bool) {
		i := indexOf(list, id)
		removed = i >= 0
		if !removed {
			return list, false
		}
		return slices.Delete(list, i, i+1), true
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// Get returns the item with the given id, or nil if there is none.
func (s *Service) Get(ctx context.Context, id int64) (*models.ReadingListItem, error) {
	list, _, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading reading list: %w", err)
	}
	i := indexOf(list, id)
	if i < 0 {
		return nil, nil
	}
	item := list[i]
	return &item, nil
}

// Open hands the item's url to opener. An unknown id returns nil without
// opening anything.
func (s *Service) Open(ctx context.Context, id int64, opener browser.Opener) (*models.ReadingListItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	if err := opener.Open(ctx, item.URL); err != nil {
		return nil, fmt.Errorf("opening item %d: %w", id, err)
	}
	return item, nil
}

// Query returns the items matching term ordered by sortKey. See Project.
func (s *Service) Query(ctx context.Context, term, sortKey string) ([]models.ReadingListItem, error) {
	list, _, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading reading list: %w", err)
	}
	return Project(list, term, sortKey), nil
}

// mutate runs one serialized read-transform-write cycle. fn receives a fresh
// copy of the list and reports whether it changed anything; unchanged lists
// are not written. fn may run more than once when the write loses a race.
func (s *Service) mutate(ctx context.Context, fn func(models.ReadingList) (models.ReadingList, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; ; attempt++ {
		list, version, err := s.store.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading reading list: %w", err)
		}

		next, changed := fn(list)
		if !changed {
			return nil
		}

		_, err = s.store.Save(ctx, next, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrConflict) || attempt >= s.maxRetries {
			return fmt.Errorf("saving reading list: %w", err)
		}
		slog.Warn("reading list changed concurrently, retrying", "attempt", attempt+1, "version", version)
	}
}

// timestamp is the current time in UTC at millisecond precision.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// nextID derives an id from now, moved past every existing id.
func nextID(list models.ReadingList, now time.Time) int64 {
	id := now.UnixMilli()
	for _, item := range list {
		if item.ID >= id {
			id = item.ID + 1
		}
	}
	return id
}

func indexOf(list models.ReadingList, id int64) int {
	return slices.IndexFunc(list, func(item models.ReadingListItem) bool {
		return item.ID == id
	})
}
