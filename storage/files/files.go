// Package files stores uploaded assets (course thumbnails) on local disk and
// serves them back by URL path.
package files

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store saves uploaded files and returns a URL path to retrieve them.
type Store interface {
	// Save writes r to storage and returns the public URL path.
	Save(name string, r io.Reader) (string, error)
	Remove(urlPath string) error
}

// DiskStore keeps files under a root directory, served at urlPrefix.
type DiskStore struct {
	root      string
	urlPrefix string
}

var _ Store = (*DiskStore)(nil)

func NewDiskStore(root, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload dir")
	}
	return &DiskStore{root: root, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Root returns the directory files are stored in, for static file serving.
func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) Save(name string, r io.Reader) (string, error) {
	// randomized filename, original extension kept
	fname := uuid.New().String() + strings.ToLower(filepath.Ext(name))
	dst := filepath.Join(s.root, fname)

	f, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "creating file")
	}
	defer func() { _ = f.Close() }()

	if _, err = io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return "", errors.Wrap(err, "writing file")
	}
	return s.urlPrefix + "/" + fname, nil
}

func (s *DiskStore) Remove(urlPath string) error {
	fname := path.Base(urlPath)
	if fname == "." || fname == "/" || fname == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, fname))
	if os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(err, "removing file")
}
