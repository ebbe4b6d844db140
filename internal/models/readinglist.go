package models

import "time"

// Sort keys accepted by reading list queries. Any other value sorts by
// SortDateAdded.
const (
	SortDateAdded = "date-added"
	SortTitle     = "title"
)

// ReadingListItem is a single page saved to the reading list.
type ReadingListItem struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	URL       string    `json:"url" yaml:"url"`
	DateAdded time.Time `json:"dateAdded" yaml:"dateAdded"`
	Read      bool      `json:"read" yaml:"read"`
}

// ReadingList is the ordered sequence of items persisted under one store key.
type ReadingList []ReadingListItem
