// Package view turns reading list items into what the user sees: display
// rows for the JSON API and the CLI, and the server-rendered popup page.
package view

import (
	"fmt"

	"github.com/hoanghai1803/readlist/internal/models"
)

// Read indicators.
const (
	IndicatorRead   = "✓"
	IndicatorUnread = "○"
)

// Action is something the user can do with a row.
type Action struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Href   string `json:"href"`
}

// Row is one display row of the reading list.
type Row struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Read      bool   `json:"read"`
	Indicator string `json:"indicator"`
	Added     string `json:"added"`
	Open      Action `json:"open"`
	Toggle    Action `json:"toggle"`
	Delete    Action `json:"delete"`
}

// Rows projects items into display rows, keeping their order.
func Rows(items []models.ReadingListItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, NewRow(item))
	}
	return rows
}

// NewRow builds the display row for a single item.
func NewRow(item models.ReadingListItem) Row {
	indicator, toggleLabel := IndicatorUnread, "Mark read"
	if item.Read {
		indicator, toggleLabel = IndicatorRead, "Mark unread"
	}

	return Row{
		ID:        item.ID,
		Title:     item.Title,
		URL:       item.URL,
		Read:      item.Read,
		Indicator: indicator,
		Added:     item.DateAdded.Format("2006-01-02 15:04"),
		Open:      Action{Label: "Open", Method: "GET", Href: item.URL},
		Toggle:    Action{Label: toggleLabel, Method: "POST", Href: fmt.Sprintf("/items/%d/toggle", item.ID)},
		Delete:    Action{Label: "Delete", Method: "POST", Href: fmt.Sprintf("/items/%d/delete", item.ID)},
	}
}
