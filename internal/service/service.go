// Package service implements the activity operations on top of the config
// and the JSON file store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-ports/todo/internal/config"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/store"
)

var (
	// ErrInvalidID is returned when remove or edit cannot resolve the given id.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicateID is returned when adding an id that already exists while
	// addressing by id.
	ErrDuplicateID = errors.New("duplicate id")
)

// Service orchestrates all activity operations for one data file.
type Service struct {
	FilePath   string
	FileSource string // "flag" | "env" | "config" | "default"
	Config     *config.Config

	store *store.Store
}

// New initialises a Service. fileFlag is the --file value and may be empty.
// The global config is loaded from its default location.
func New(fileFlag string) (*Service, error) {
	cfg, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}
	return NewWithConfig(fileFlag, cfg)
}

// NewWithConfig initialises a Service with an already loaded config.
// The parent directory is created only for the default file location;
// an explicitly configured path must already have one.
func NewWithConfig(fileFlag string, cfg *config.Config) (*Service, error) {
	path, source := config.ResolveFile(fileFlag, cfg)
	if source == "default" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("service.New: create data dir: %w", err)
		}
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("service.New: %w", err)
	}
	slog.Debug("opened activity file", "path", path, "source", source, "addressing", cfg.Addressing)

	return &Service{
		FilePath:   path,
		FileSource: source,
		Config:     cfg,
		store:      st,
	}, nil
}

// ---------------------------------------------------------------------------
// Add
// ---------------------------------------------------------------------------

// Add appends a to the stored list.
func (s *Service) Add(ctx context.Context, a models.Activity) error {
	err := s.store.Update(ctx, func(list []models.Activity) ([]models.Activity, error) {
		if !s.Config.ByPosition() && slices.ContainsFunc(list, func(x models.Activity) bool { return x.ID == a.ID }) {
			return nil, fmt.Errorf("%w: an activity with id %d already exists", ErrDuplicateID, a.ID)
		}
		return append(list, a), nil
	})
	if err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// List / Search
// ---------------------------------------------------------------------------

// List returns every stored activity ordered by key, reversed if requested.
func (s *Service) List(_ context.Context, key models.SortKey, reverse bool) ([]models.Row, error) {
	list, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	rows := models.Rows(list)
	models.Sort(rows, key, reverse)
	return rows, nil
}

// Search returns the rows matching f in stored order, along with the total
// number of stored activities.
func (s *Service) Search(_ context.Context, f models.Filter) ([]models.Row, int, error) {
	list, err := s.store.Load()
	if err != nil {
		return nil, 0, fmt.Errorf("Search: %w", err)
	}
	return f.Apply(models.Rows(list)), len(list), nil
}

// ---------------------------------------------------------------------------
// Remove / Edit
// ---------------------------------------------------------------------------

// Remove deletes the activity addressed by id and returns it.
func (s *Service) Remove(ctx context.Context, id uint) (*models.Activity, error) {
	var removed models.Activity
	err := s.store.Update(ctx, func(list []models.Activity) ([]models.Activity, error) {
		idx, err := s.resolve(list, id)
		if err != nil {
			return nil, err
		}
		removed = list[idx]
		return slices.Delete(list, idx, idx+1), nil
	})
	if err != nil {
		return nil, fmt.Errorf("Remove: %w", err)
	}
	return &removed, nil
}

// Edit applies patch to the activity addressed by id and returns the result.
func (s *Service) Edit(ctx context.Context, id uint, patch models.Patch) (*models.Activity, error) {
	var updated models.Activity
	err := s.store.Update(ctx, func(list []models.Activity) ([]models.Activity, error) {
		idx, err := s.resolve(list, id)
		if err != nil {
			return nil, err
		}
		patch.ApplyTo(&list[idx])
		updated = list[idx]
		return list, nil
	})
	if err != nil {
		return nil, fmt.Errorf("Edit: %w", err)
	}
	return &updated, nil
}

// resolve maps a user-supplied id to an index into list according to the
// configured addressing mode.
func (s *Service) resolve(list []models.Activity, id uint) (int, error) {
	if s.Config.ByPosition() {
		return resolvePosition(list, id)
	}
	return resolveID(list, id)
}

func resolvePosition(list []models.Activity, pos uint) (int, error) {
	if len(list) == 0 {
		return 0, fmt.Errorf("%w: %d, the list is empty", ErrInvalidID, pos)
	}
	if pos == 0 || pos > uint(len(list)) {
		return 0, fmt.Errorf("%w: %d, valid range: 1-%d", ErrInvalidID, pos, len(list))
	}
	return int(pos - 1), nil // #nosec G115 -- bounded by len(list)
}

func resolveID(list []models.Activity, id uint) (int, error) {
	idx := slices.IndexFunc(list, func(a models.Activity) bool { return a.ID == id })
	if idx < 0 {
		return 0, fmt.Errorf("%w: no activity with id %d", ErrInvalidID, id)
	}
	return idx, nil
}
