package readinglist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hoanghai1803/readlist/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestProject(t *testing.T) {
	list := models.ReadingList{
		{ID: 10, Title: "banana bread", URL: "https://kitchen.example/bread", DateAdded: day(3)},
		{ID: 11, Title: "Apple pie", URL: "https://kitchen.example/pie", DateAdded: day(5)},
		{ID: 12, Title: "Go generics", URL: "https://FOO.example/go", DateAdded: day(1)},
		{ID: 13, Title: "Foo fighters", URL: "https://music.example", DateAdded: day(4)},
		{ID: 14, Title: "zebra", URL: "https://zoo.example", DateAdded: day(2)},
	}

	tests := []struct {
		name    string
		term    string
		sortKey string
		want    []int64
	}{
		{
			name:    "no term, date added newest first",
			sortKey: models.SortDateAdded,
			want:    []int64{11, 13, 10, 14, 12},
		},
		{
			name:    "no term, title collation ignores case",
			sortKey: models.SortTitle,
			want:    []int64{11, 10, 13, 12, 14},
		},
		{
			name:    "term matches title or url case-insensitively",
			term:    "foo",
			sortKey: models.SortTitle,
			want:    []int64{13, 12},
		},
		{
			name:    "term matches url only",
			term:    "KITCHEN",
			sortKey: models.SortDateAdded,
			want:    []int64{11, 10},
		},
		{
			name:    "unknown sort key falls back to date added",
			sortKey: "popularity",
			want:    []int64{11, 13, 10, 14, 12},
		},
		{
			name:    "no match",
			term:    "nothing-here",
			sortKey: models.SortTitle,
			want:    []int64{},
		},
		{
			name:    "whitespace term keeps everything",
			term:    "   ",
			sortKey: models.SortDateAdded,
			want:    []int64{11, 13, 10, 14, 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(list, tt.term, tt.sortKey)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestProject_TieBreakByID(t *testing.T) {
	list := models.ReadingList{
		{ID: 3, Title: "same", DateAdded: day(1)},
		{ID: 1, Title: "Same", DateAdded: day(1)},
		{ID: 2, Title: "same", DateAdded: day(1)},
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(Project(list, "", models.SortDateAdded)))
	assert.Equal(t, []int64{1, 2, 3}, ids(Project(list, "", models.SortTitle)))
}

func TestProject_DoesNotModifyInput(t *testing.T) {
	list := models.ReadingList{
		{ID: 1, Title: "b", DateAdded: day(1)},
		{ID: 2, Title: "a", DateAdded: day(2)},
	}

	_ = Project(list, "", models.SortTitle)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(2), list[1].ID)
}

func TestProject_LocaleAwareTitles(t *testing.T) {
	list := models.ReadingList{
		{ID: 1, Title: "Zürich", DateAdded: day(1)},
		{ID: 2, Title: "Ábaco", DateAdded: day(1)},
		{ID: 3, Title: "apple", DateAdded: day(1)},
	}

	// Byte order would give Zürich, apple, Ábaco.
	assert.Equal(t, []int64{2, 3, 1}, ids(Project(list, "", models.SortTitle)))
}
