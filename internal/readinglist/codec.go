package readinglist

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hoanghai1803/readlist/internal/models"
)

// Encode serializes list as a JSON array. A nil list encodes as [].
func Encode(list models.ReadingList) ([]byte, error) {
	if list == nil {
		list = models.ReadingList{}
	}
	return json.Marshal(list)
}

// Decode parses a JSON array of items. Empty input or null is an empty list.
// Duplicate ids are rejected.
func Decode(data []byte) (models.ReadingList, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return models.ReadingList{}, nil
	}

	var list models.ReadingList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("unmarshaling reading list: %w", err)
	}

	seen := make(map[int64]bool, len(list))
	for _, item := range list {
		if seen[item.ID] {
			return nil, fmt.Errorf("duplicate item id %d", item.ID)
		}
		seen[item.ID] = true
	}
	return list, nil
}
