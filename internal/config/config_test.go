package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/snapmatch/internal/handler"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "testdata/snapshots", cfg.SnapshotDir)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "json", cfg.DefaultFormat)
	assert.Equal(t, []string{"id", "created_at", "updated_at"}, cfg.DynamicAttributes)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
snapshot_dir: test/fixtures/snapshots
default_format: text
ignore_order: [unordered, prices]
text_excluding:
  - 'be+ta'
  - '\d{4}-\d{2}-\d{2}'
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test/fixtures/snapshots", cfg.SnapshotDir)
	assert.Equal(t, "text", cfg.DefaultFormat)
	assert.Equal(t, []string{"unordered", "prices"}, cfg.IgnoreOrder)
	assert.Equal(t, []string{"id", "created_at", "updated_at"}, cfg.DynamicAttributes, "unset fields keep defaults")

	defaults, err := cfg.Defaults()
	require.NoError(t, err)
	assert.Equal(t, handler.FormatText, defaults.Format)
	require.Len(t, defaults.TextExcluding, 2)
	assert.Equal(t, `be+ta`, defaults.TextExcluding[0].String())
}

func TestLoadOverridesListsCompletely(t *testing.T) {
	cfg, err := Parse([]byte("dynamic_attributes: []\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.DynamicAttributes)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"unknown field", "snapshots_dir: x\n", "failed to parse YAML"},
		{"bad format", "default_format: xml\n", "default_format"},
		{"bad pattern", "text_excluding: ['(unclosed']\n", "text_excluding"},
		{"bad store", "store: s3\n", "store"},
		{"sqlite without path", "store: sqlite\n", "store_path"},
		{"file without dir", "snapshot_dir: ''\n", "snapshot_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOrDefault(writeConfig(t, "store: nope\n"))
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	configs := map[string]*Config{
		StoreFile:   {Store: StoreFile, SnapshotDir: filepath.Join(dir, "files"), DefaultFormat: "json"},
		StoreMemory: {Store: StoreMemory, DefaultFormat: "json"},
		StoreSQLite: {Store: StoreSQLite, StorePath: filepath.Join(dir, "snap.db"), DefaultFormat: "json"},
		StoreBadger: {Store: StoreBadger, StorePath: filepath.Join(dir, "badger"), DefaultFormat: "json"},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, cfg.Validate())

			st, closer, err := cfg.OpenStore(logger)
			require.NoError(t, err)
			defer closer.Close()

			require.NoError(t, st.Write(ctx, "api/file.json", []byte(`{}`)))
			exists, err := st.Exists(ctx, "api/file.json")
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}
