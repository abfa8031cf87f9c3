package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DocumentStore persists an uploaded document and returns a URL the client
// can retrieve it from later.
type DocumentStore interface {
	Save(filename string, r io.Reader) (string, error)
}

// LocalStore implements DocumentStore on the local filesystem. Saved files
// are served back under baseURL by the router's static route.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the upload directory if needed and returns a store.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Save writes the document under a timestamp-prefixed name so repeated
// uploads of the same file never collide.
func (s *LocalStore) Save(filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(filename))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return s.baseURL + "/" + name, nil
}
