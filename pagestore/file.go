package pagestore

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileBackend stores a generation as a gob-encoded map in
// <dir>/page_cache-YYYY-MM-DD.gob.
type FileBackend struct {
	path string
}

// NewFileBackend returns the backend for the generation containing day.
func NewFileBackend(dir string, day time.Time) *FileBackend {
	name := "page_cache-" + day.Format("2006-01-02") + ".gob"
	return &FileBackend{path: filepath.Join(dir, name)}
}

func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Load() (map[string]string, error) {
	f, err := os.Open(b.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := map[string]string{}
	if err := gob.NewDecoder(f).Decode(&pages); err != nil {
		return nil, fmt.Errorf("decode %s: %w", b.path, err)
	}
	return pages, nil
}

// Save writes to a temporary file and renames it into place, so an
// interrupted save leaves the previous generation intact.
func (b *FileBackend) Save(pages map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".page_cache-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(pages); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode %s: %w", b.path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}
