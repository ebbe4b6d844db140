package readinglist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hoanghai1803/readlist/internal/models"
	"github.com/hoanghai1803/readlist/internal/storage"
)

// DefaultKey is the store key the reading list lives under.
const DefaultKey = "readingList"

// Store persists the whole reading list as one value. Every Load returns the
// version it read; Save succeeds only if that version is still current and
// otherwise fails with storage.ErrConflict.
type Store interface {
	Load(ctx context.Context) (models.ReadingList, int64, error)
	Save(ctx context.Context, list models.ReadingList, version int64) (int64, error)
}

// KV is the subset of storage.Store the reading list needs.
type KV interface {
	Get(ctx context.Context, key string, dest any) (int64, error)
	CompareAndSwap(ctx context.Context, key string, expected int64, value any) (int64, error)
}

// KVStore keeps the reading list under a single key of a versioned
// key-value store.
type KVStore struct {
	kv  KV
	key string
}

// NewKVStore returns a Store that reads and writes key in kv. An empty key
// means DefaultKey.
func NewKVStore(kv KV, key string) *KVStore {
	if key == "" {
		key = DefaultKey
	}
	return &KVStore{kv: kv, key: key}
}

// Load returns the stored list and its version. A missing key is an empty
// list at version 0.
func (s *KVStore) Load(ctx context.Context) (models.ReadingList, int64, error) {
	var raw json.RawMessage
	version, err := s.kv.Get(ctx, s.key, &raw)
	if errors.Is(err, storage.ErrNotFound) {
		return models.ReadingList{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading %q: %w", s.key, err)
	}

	list, err := Decode(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %q: %w", s.key, err)
	}
	return list, version, nil
}

// Save writes list if the stored version still equals version.
func (s *KVStore) Save(ctx context.Context, list models.ReadingList, version int64) (int64, error) {
	data, err := Encode(list)
	if err != nil {
		return 0, fmt.Errorf("encoding %q: %w", s.key, err)
	}

	next, err := s.kv.CompareAndSwap(ctx, s.key, version, json.RawMessage(data))
	if err != nil {
		return 0, fmt.Errorf("writing %q: %w", s.key, err)
	}
	return next, nil
}
