package readinglist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/hoanghai1803/readlist/internal/models"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Document is what Service.Export writes.
type Document struct {
	Version    int64              `json:"version" yaml:"version"`
	ExportedAt time.Time          `json:"exportedAt" yaml:"exportedAt"`
	Items      models.ReadingList `json:"items" yaml:"items"`
}

// Import appends every tab with a title and url that is not already on the
// list, in a single write, and returns how many were added.
func (s *Service) Import(ctx context.Context, tabs []browser.Tab) (int, error) {
	var added int
	err := s.mutate(ctx, func(list models.ReadingList) (models.ReadingList, bool) {
		added = 0
		known := make(map[string]bool, len(list))
		for _, item := range list {
			known[item.URL] = true
		}

		now := s.timestamp()
		for _, tab := range tabs {
			title := strings.TrimSpace(tab.Title)
			url := strings.TrimSpace(tab.URL)
			if title == "" || url == "" || known[url] {
				continue
			}
			known[url] = true
			list = append(list, models.ReadingListItem{
				ID:        nextID(list, now),
				Title:     title,
				URL:       url,
				DateAdded: now,
			})
			added++
		}
		return list, added > 0
	})
	if err != nil {
		return 0, err
	}

	slog.Info("imported into reading list", "offered", len(tabs), "added", added)
	return added, nil
}

// Export writes the whole list to w as JSON or YAML.
func (s *Service) Export(ctx context.Context, w io.Writer, format string) error {
	list, version, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading reading list: %w", err)
	}

	doc := Document{
		Version:    version,
		ExportedAt: s.timestamp(),
		Items:      list,
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json export: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flushing yaml export: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q: must be %q or %q", format, FormatJSON, FormatYAML)
	}
	return nil
}
