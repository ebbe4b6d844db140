package readinglist

import (
	"cmp"
	"slices"
	"strings"

	"github.com/hoanghai1803/readlist/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Project filters items by term and orders them by sortKey. It never
// modifies items.
//
// Filtering is a case-insensitive substring match on title or url; a blank
// term keeps everything. SortTitle orders by title using English collation,
// ignoring case; anything else orders by DateAdded, newest first. Ties are
// broken by ascending id.
func Project(items models.ReadingList, term, sortKey string) []models.ReadingListItem {
	out := filter(items, term)

	switch sortKey {
	case models.SortTitle:
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b models.ReadingListItem) int {
			if r := c.CompareString(a.Title, b.Title); r != 0 {
				return r
			}
			return cmp.Compare(a.ID, b.ID)
		})
	default:
		slices.SortStableFunc(out, func(a, b models.ReadingListItem) int {
			if r := b.DateAdded.Compare(a.DateAdded); r != 0 {
				return r
			}
			return cmp.Compare(a.ID, b.ID)
		})
	}
	return out
}

func filter(items models.ReadingList, term string) []models.ReadingListItem {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]models.ReadingListItem, 0, len(items))
	for _, item := range items {
		if needle == "" ||
			strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.URL), needle) {
			out = append(out, item)
		}
	}
	return out
}
