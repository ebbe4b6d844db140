package view

import (
	"testing"
	"time"

	"github.com/hoanghai1803/readlist/internal/models"
)

func TestRows(t *testing.T) {
	added := time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)
	items := []models.ReadingListItem{
		{ID: 7, Title: "Unread", URL: "https://u.example", DateAdded: added},
		{ID: 8, Title: "Done", URL: "https://d.example", DateAdded: added, Read: true},
	}

	rows := Rows(items)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"unread indicator", rows[0].Indicator, IndicatorUnread},
		{"read indicator", rows[1].Indicator, IndicatorRead},
		{"unread toggle label", rows[0].Toggle.Label, "Mark read"},
		{"read toggle label", rows[1].Toggle.Label, "Mark unread"},
		{"open href is the url", rows[0].Open.Href, "https://u.example"},
		{"toggle href", rows[0].Toggle.Href, "/items/7/toggle"},
		{"delete href", rows[1].Delete.Href, "/items/8/delete"},
		{"added label", rows[0].Added, "2024-01-02 15:04"},
		{"title kept", rows[1].Title, "Done"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestRows_Empty(t *testing.T) {
	rows := Rows(nil)
	if rows == nil {
		t.Fatal("Rows(nil) = nil, want empty slice for JSON encoding")
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}
