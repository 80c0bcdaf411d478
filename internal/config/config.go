// Package config loads snapmatch configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/snapmatch/internal/handler"
	"github.com/roach88/snapmatch/internal/normalize"
	"github.com/roach88/snapmatch/internal/snapshot"
	"github.com/roach88/snapmatch/internal/store"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "snapmatch.yaml"

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreBadger = "badger"
	StoreMemory = "memory"
)

// ValidStores lists the accepted store kinds.
var ValidStores = []string{StoreFile, StoreSQLite, StoreBadger, StoreMemory}

// Config is the on-disk configuration.
type Config struct {
	// SnapshotDir is the root of the file store.
	SnapshotDir string `yaml:"snapshot_dir"`

	// Store selects the backend: file, sqlite, badger or memory.
	Store string `yaml:"store"`

	// StorePath is the SQLite database file or Badger directory.
	StorePath string `yaml:"store_path,omitempty"`

	// DefaultFormat is json or text.
	DefaultFormat string `yaml:"default_format"`

	// DynamicAttributes are field names ignored in every comparison.
	DynamicAttributes []string `yaml:"dynamic_attributes"`

	// IgnoreOrder are field names whose arrays compare unordered.
	IgnoreOrder []string `yaml:"ignore_order"`

	// TextExcluding are regular expressions masked in text comparisons.
	TextExcluding []string `yaml:"text_excluding"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SnapshotDir:       "testdata/snapshots",
		Store:             StoreFile,
		DefaultFormat:     string(handler.FormatJSON),
		DynamicAttributes: slices.Clone(snapshot.DefaultDynamicAttributes),
		IgnoreOrder:       []string{},
		TextExcluding:     []string{},
	}
}

// Load reads and validates a configuration file. Fields missing from the
// file keep their defaults; unknown fields are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault loads path, falling back to Default when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes and validates YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the store kind, the format and the exclusion patterns.
func (c *Config) Validate() error {
	if _, err := handler.ParseFormat(c.DefaultFormat); err != nil {
		return fmt.Errorf("default_format: %w", err)
	}
	if !slices.Contains(ValidStores, c.Store) {
		return fmt.Errorf("store: invalid kind %q: must be one of %v", c.Store, ValidStores)
	}
	switch c.Store {
	case StoreFile:
		if c.SnapshotDir == "" {
			return errors.New("snapshot_dir: required for the file store")
		}
	case StoreSQLite, StoreBadger:
		if c.StorePath == "" {
			return fmt.Errorf("store_path: required for the %s store", c.Store)
		}
	}
	if _, err := normalize.CompilePatterns(c.TextExcluding); err != nil {
		return fmt.Errorf("text_excluding: %w", err)
	}
	return nil
}

// Defaults converts the configuration into matcher defaults.
func (c *Config) Defaults() (snapshot.Defaults, error) {
	format, err := handler.ParseFormat(c.DefaultFormat)
	if err != nil {
		return snapshot.Defaults{}, err
	}
	patterns, err := normalize.CompilePatterns(c.TextExcluding)
	if err != nil {
		return snapshot.Defaults{}, err
	}
	return snapshot.Defaults{
		Format:            format,
		DynamicAttributes: slices.Clone(c.DynamicAttributes),
		IgnoreOrder:       slices.Clone(c.IgnoreOrder),
		TextExcluding:     patterns,
	}, nil
}

// OpenStore opens the configured backend. The returned closer must be
// called when the store is no longer needed.
func (c *Config) OpenStore(logger *slog.Logger) (snapshot.Store, io.Closer, error) {
	switch c.Store {
	case StoreFile:
		return store.NewFile(c.SnapshotDir), nopCloser{}, nil
	case StoreMemory:
		return store.NewMemory(), nopCloser{}, nil
	case StoreSQLite:
		s, err := store.OpenSQLite(c.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case StoreBadger:
		s, err := store.OpenBadger(store.BadgerConfig{
			Path:       c.StorePath,
			SyncWrites: true,
			Logger:     logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("store: invalid kind %q", c.Store)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
