package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/hoanghai1803/readlist/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var popupTemplate = template.Must(template.ParseFS(templatesFS, "templates/popup.html"))

// SortOption is an entry of the sort selector.
type SortOption struct {
	Value    string
	Label    string
	Selected bool
}

// Page is the data behind the popup page.
type Page struct {
	Rows        []Row
	Query       string
	Sort        string
	SortOptions []SortOption
	Error       string
}

// NewPage builds the popup for items as already filtered and sorted by
// query and sortKey.
func NewPage(items []models.ReadingListItem, query, sortKey string) Page {
	if sortKey != models.SortTitle {
		sortKey = models.SortDateAdded
	}
	return Page{
		Rows:  Rows(items),
		Query: query,
		Sort:  sortKey,
		SortOptions: []SortOption{
			{Value: models.SortDateAdded, Label: "Date Added", Selected: sortKey == models.SortDateAdded},
			{Value: models.SortTitle, Label: "Title", Selected: sortKey == models.SortTitle},
		},
	}
}

// Render writes the page as HTML.
func (p Page) Render(w io.Writer) error {
	if err := popupTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("rendering popup: %w", err)
	}
	return nil
}
