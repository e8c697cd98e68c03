// Package demodb persists demo-mode data as JSON arrays in the local
// key-value store. Only lessons and lesson progress are kept locally;
// the remaining entities read empty in demo mode.
package demodb

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/storage/kvstore"
)

// Storage keys for the demo arrays.
const (
	lessonsKey  = "demo-lessons"
	progressKey = "demo-lesson-progress"
)

func load[T any](kv kvstore.Store, key string) ([]T, error) {
	raw, ok := kv.Get(key)
	if !ok || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", key)
	}
	return items, nil
}

func save[T any](kv kvstore.Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	return kv.Set(key, string(raw))
}
