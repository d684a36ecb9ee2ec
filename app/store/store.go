// Package store persists the dataset document. The document is only ever
// replaced wholesale: saves go through a temp file and an atomic rename, so
// a failed run can never corrupt the last-known-good state and concurrent
// readers never observe a partial write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/keebindex/keebindex/app/catalog"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted dataset. A missing file yields an empty dataset,
// not an error; any other failure is fatal for the caller since overwriting
// an unreadable document would discard state we cannot account for.
func (s *Store) Load() (*catalog.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &catalog.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var dataset catalog.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	return &dataset, nil
}

// Save writes the dataset with write-then-replace semantics.
func (s *Store) Save(dataset *catalog.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace dataset: %w", err)
	}

	return nil
}

// ModTime returns the document's last modification time, zero if the
// document does not exist yet.
func (s *Store) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat dataset: %w", err)
	}
	return info.ModTime(), nil
}
