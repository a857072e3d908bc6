// Package store persists the activity list as a single JSON array file.
//
// Every mutation rewrites the whole file: the list is loaded, changed in
// memory, encoded, and atomically renamed over the previous version while an
// exclusive lock on a sibling "<file>.lock" is held. Readers take no lock;
// because the file is only ever replaced by rename they always see a complete
// document.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-ports/todo/internal/atomicfile"
	"github.com/go-ports/todo/internal/models"
)

// ErrCorrupt is returned when the file content is not a JSON array of activities.
var ErrCorrupt = errors.New("corrupt activity file")

// Store is a handle on one activity file.
type Store struct {
	path string
}

// Open returns a Store for path, creating an empty file if none exists.
// Parent directories are not created.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store.Open: empty path")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) // #nosec G304 -- path is the user's configured data file
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads and decodes the whole file.
func (s *Store) Load() ([]models.Activity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("store.Load: %w", err)
	}
	list, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("store.Load %s: %w", s.path, err)
	}
	return list, nil
}

// Save replaces the file content with list.
func (s *Store) Save(ctx context.Context, list []models.Activity) error {
	return s.Update(ctx, func([]models.Activity) ([]models.Activity, error) {
		return list, nil
	})
}

// Update runs a locked read-modify-write cycle. fn receives the current list
// and returns the list to persist; if fn fails nothing is written.
func (s *Store) Update(ctx context.Context, fn func([]models.Activity) ([]models.Activity, error)) error {
	lock, err := acquireLock(ctx, s.path+".lock")
	if err != nil {
		return fmt.Errorf("store.Update: %w", err)
	}
	defer lock.release()

	current, err := s.Load()
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	data, err := Encode(next)
	if err != nil {
		return fmt.Errorf("store.Update: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, data, 0); err != nil {
		return fmt.Errorf("store.Update: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

// Decode parses file content. Empty or whitespace-only content and a JSON
// null both decode to an empty list.
func Decode(data []byte) ([]models.Activity, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return make([]models.Activity, 0), nil
	}
	var list []models.Activity
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if list == nil {
		list = make([]models.Activity, 0)
	}
	return list, nil
}

// Encode renders list as an indented JSON array with a trailing newline.
func Encode(list []models.Activity) ([]byte, error) {
	if list == nil {
		list = make([]models.Activity, 0)
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
