// Package config handles configuration loading and data file resolution.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-ports/todo/internal/models"
)

// EnvFile names the environment variable that overrides the data file location.
const EnvFile = "TODO_FILE"

// Addressing modes for remove and edit.
const (
	AddressByID       = "id"
	AddressByPosition = "position"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// ListConfig holds defaults for `todo list`.
type ListConfig struct {
	Sort    string `yaml:"sort"` // "id" | "name" | "priority" | "completed"
	Reverse bool   `yaml:"reverse"`
}

// ExportConfig holds defaults for `todo export`.
type ExportConfig struct {
	Redact         bool     `yaml:"redact"`
	RedactPatterns []string `yaml:"redact_patterns,omitempty"`
}

// Config is the root configuration.
type Config struct {
	File       string       `yaml:"file,omitempty"`
	Addressing string       `yaml:"addressing"` // "id" | "position"
	List       ListConfig   `yaml:"list"`
	Export     ExportConfig `yaml:"export"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Addressing: AddressByID,
		List: ListConfig{
			Sort: string(models.SortByID),
		},
	}
}

// SortKey returns the configured default sort key.
func (c *Config) SortKey() models.SortKey {
	k, err := models.ParseSortKey(c.List.Sort)
	if err != nil {
		return models.SortByID
	}
	return k
}

// ByPosition reports whether remove/edit address records by list position.
func (c *Config) ByPosition() bool {
	return c.Addressing == AddressByPosition
}

// Load reads a config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values; invalid values are reset to
// their default with a warning.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's config file
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if v, ok := raw["file"].(string); ok {
		cfg.File = strings.TrimSpace(v)
	}
	if v, ok := raw["addressing"].(string); ok && v != "" {
		switch v {
		case AddressByID, AddressByPosition:
			cfg.Addressing = v
		default:
			slog.Warn("config: unknown addressing mode, using default", "value", v, "default", cfg.Addressing)
		}
	}
	if list, ok := raw["list"].(map[string]any); ok {
		if v, ok := list["sort"].(string); ok && v != "" {
			if k, err := models.ParseSortKey(v); err == nil {
				cfg.List.Sort = string(k)
			} else {
				slog.Warn("config: unknown list.sort, using default", "value", v, "default", cfg.List.Sort)
			}
		}
		if v, ok := list["reverse"].(bool); ok {
			cfg.List.Reverse = v
		}
	}
	if export, ok := raw["export"].(map[string]any); ok {
		if v, ok := export["redact"].(bool); ok {
			cfg.Export.Redact = v
		}
		if v, ok := export["redact_patterns"].([]any); ok {
			for _, p := range v {
				if s, ok := p.(string); ok {
					cfg.Export.RedactPatterns = append(cfg.Export.RedactPatterns, s)
				} else {
					slog.Warn("config: ignoring non-string export.redact_patterns entry", "value", p)
				}
			}
		}
	}

	return cfg, nil
}

// ---------------------------------------------------------------------------
// Paths
// ---------------------------------------------------------------------------

// Path returns the location of the global config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "todo", "config.yaml"), nil
}

// LoadGlobal loads the config file returned by Path.
func LoadGlobal() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return Load(p)
}

// DefaultFile returns the data file used when nothing else is configured.
func DefaultFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".todo", "todo.json")
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveFile returns the data file path and the source of the resolution.
// Priority: flag → TODO_FILE env → persisted config → ~/.todo/todo.json.
// source is one of "flag", "env", "config", or "default".
func ResolveFile(flag string, cfg *Config) (path, source string) {
	if flag != "" {
		if p, err := normalizePath(flag); err == nil {
			return p, "flag"
		}
	}
	if env := os.Getenv(EnvFile); env != "" {
		if p, err := normalizePath(env); err == nil {
			return p, "env"
		}
	}
	if cfg != nil && cfg.File != "" {
		if p, err := normalizePath(cfg.File); err == nil {
			return p, "config"
		}
	}
	return DefaultFile(), "default"
}

// ---------------------------------------------------------------------------
// Persisted settings
// ---------------------------------------------------------------------------

// SetPersistedFile normalizes path and stores it under "file" in the global
// config, preserving other keys. Returns the normalized path.
func SetPersistedFile(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := Path()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	var raw map[string]any
	data, err := os.ReadFile(cfgPath) // #nosec G304 -- fixed config location
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return "", fmt.Errorf("%s: %w", cfgPath, err)
		}
	case !os.IsNotExist(err):
		return "", err
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["file"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedFile removes "file" from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedFile() (bool, error) {
	cfgPath, err := Path()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(cfgPath) // #nosec G304 -- fixed config location
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false, fmt.Errorf("%s: %w", cfgPath, err)
	}
	if _, ok := raw["file"]; !ok {
		return false, nil
	}
	delete(raw, "file")

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}
