package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EZCODE_MAX_FILE_SIZE_KB",
		"EZCODE_MAX_WORKERS",
		"EZCODE_CACHE_SIZE",
		"EZCODE_IGNORE_FILE",
		"EZCODE_PRUNE",
		"EZCODE_WATCH_DEBOUNCE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Prune)
	assert.Equal(t, 1024, cfg.MaxFileSizeKB)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
}

func TestLoadProjectFile(t *testing.T) {
	clearEnv(t)

	root := t.TempDir()
	content := `
max_file_size_kb: 64
max_workers: 3
ignore_file: .ezignore
ignore:
  - "*.generated.tsx"
  - drafts/
prune: false
cache_size: 16
watch_debounce: 2s
`
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxFileSizeKB)
	assert.Equal(t, 3, cfg.MaxWorkers)
	assert.Equal(t, ".ezignore", cfg.IgnoreFile)
	assert.Equal(t, []string{"*.generated.tsx", "drafts/"}, cfg.Ignore)
	assert.False(t, cfg.Prune)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce)
	assert.Equal(t, filepath.Join(root, ".ezignore"), cfg.IgnorePath(root))
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("max_workers: 2\n"), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxWorkers)
	assert.True(t, cfg.Prune)
	assert.Equal(t, ".gitignore", cfg.IgnoreFile)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	clearEnv(t)

	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("max_file_size_kb: 64\nprune: true\n"), 0o644))

	t.Setenv("EZCODE_MAX_FILE_SIZE_KB", "8")
	t.Setenv("EZCODE_MAX_WORKERS", " 5 ")
	t.Setenv("EZCODE_PRUNE", "false")
	t.Setenv("EZCODE_IGNORE_FILE", "/etc/ezignore")
	t.Setenv("EZCODE_WATCH_DEBOUNCE", "100ms")
	t.Setenv("EZCODE_CACHE_SIZE", "1")

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxFileSizeKB)
	assert.Equal(t, 5, cfg.MaxWorkers)
	assert.False(t, cfg.Prune)
	assert.Equal(t, "/etc/ezignore", cfg.IgnorePath(root))
	assert.Equal(t, 100*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, 1, cfg.CacheSize)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		want string
	}{
		{name: "bad yaml", file: "max_workers: [", want: "failed to parse config"},
		{name: "bad duration", file: "watch_debounce: soon", want: "watch_debounce"},
		{name: "negative size", file: "max_file_size_kb: -1", want: "max_file_size_kb"},
		{name: "negative workers", env: map[string]string{"EZCODE_MAX_WORKERS": "-2"}, want: "max_workers"},
		{name: "bad int env", env: map[string]string{"EZCODE_CACHE_SIZE": "lots"}, want: "EZCODE_CACHE_SIZE"},
		{name: "bad bool env", env: map[string]string{"EZCODE_PRUNE": "maybe"}, want: "EZCODE_PRUNE"},
		{name: "bad duration env", env: map[string]string{"EZCODE_WATCH_DEBOUNCE": "1 hour"}, want: "EZCODE_WATCH_DEBOUNCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			root := t.TempDir()
			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(tt.file), 0o644))
			}

			_, err := Load(root, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestIgnorePathEmpty(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.IgnoreFile = ""
	assert.Equal(t, "", cfg.IgnorePath("/project"))
}
