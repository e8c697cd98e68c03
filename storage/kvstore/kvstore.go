// Package kvstore provides the local persistent area used by demo mode
// and the file-backed session store. Values are plain strings keyed by
// name, persisted as a single JSON document on disk.
package kvstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

type (
	// Store is a minimal string key-value store.
	Store interface {
		Get(key string) (string, bool)
		Set(key, value string) error
		Remove(key string) error
	}

	// FileStore persists its entries to a JSON file. Writes go through a
	// temp file plus rename so a crash leaves either the old document or
	// the new one, never a truncated one.
	FileStore struct {
		path string

		mu   sync.RWMutex
		data map[string]string
	}
)

var _ Store = (*FileStore)(nil)

// Open loads (or creates) the store file at path.
func Open(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}

	fs := &FileStore{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "reading store file")
	}
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &fs.data); err != nil {
			return nil, errors.Wrap(err, "parsing store file")
		}
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	v, ok := fs.data[key]
	return v, ok
}

func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.data[key] = value
	return fs.flush()
}

func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.data[key]; !ok {
		return nil
	}
	delete(fs.data, key)
	return fs.flush()
}

// flush must be called with mu held.
func (fs *FileStore) flush() error {
	raw, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding store file")
	}
	tmp := fs.path + ".tmp"
	if err = os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrap(err, "writing store file")
	}
	return errors.Wrap(os.Rename(tmp, fs.path), "replacing store file")
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (ms *MemStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	v, ok := ms.data[key]
	return v, ok
}

func (ms *MemStore) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.data[key] = value
	return nil
}

func (ms *MemStore) Remove(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.data, key)
	return nil
}
