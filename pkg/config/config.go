// Package config loads ezcode settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file looked up in the project root.
const FileName = ".ezcode.yaml"

// Config holds the settings shared by every command.
type Config struct {
	MaxFileSizeKB int           `yaml:"max_file_size_kb"` // Files larger than this are not loaded.
	MaxWorkers    int           `yaml:"max_workers"`      // Loader concurrency; 0 means one per CPU.
	IgnoreFile    string        `yaml:"ignore_file"`      // Project ignore file, relative to the root.
	Ignore        []string      `yaml:"ignore"`           // Extra ignore patterns.
	Prune         bool          `yaml:"prune"`            // Skip directories that hold no editable files.
	CacheSize     int           `yaml:"cache_size"`       // Number of file contents kept in memory.
	WatchDebounce time.Duration `yaml:"watch_debounce"`   // Settle time before a watch refresh.
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxFileSizeKB: 1024,
		MaxWorkers:    0,
		IgnoreFile:    ".gitignore",
		Prune:         true,
		CacheSize:     128,
		WatchDebounce: 500 * time.Millisecond,
	}
}

// Load reads configuration for the project at root. path selects an explicit
// file; when empty, root/.ezcode.yaml is used if it exists. Values from a
// .env file and the environment override the file.
func Load(root, path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, FileName)
	}
	if err := cfg.readFile(path, explicit); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var raw struct {
		MaxFileSizeKB *int     `yaml:"max_file_size_kb"`
		MaxWorkers    *int     `yaml:"max_workers"`
		IgnoreFile    *string  `yaml:"ignore_file"`
		Ignore        []string `yaml:"ignore"`
		Prune         *bool    `yaml:"prune"`
		CacheSize     *int     `yaml:"cache_size"`
		WatchDebounce *string  `yaml:"watch_debounce"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if raw.MaxFileSizeKB != nil {
		c.MaxFileSizeKB = *raw.MaxFileSizeKB
	}
	if raw.MaxWorkers != nil {
		c.MaxWorkers = *raw.MaxWorkers
	}
	if raw.IgnoreFile != nil {
		c.IgnoreFile = strings.TrimSpace(*raw.IgnoreFile)
	}
	if raw.Ignore != nil {
		c.Ignore = raw.Ignore
	}
	if raw.Prune != nil {
		c.Prune = *raw.Prune
	}
	if raw.CacheSize != nil {
		c.CacheSize = *raw.CacheSize
	}
	if raw.WatchDebounce != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*raw.WatchDebounce))
		if err != nil {
			return fmt.Errorf("invalid watch_debounce in %s: %w", path, err)
		}
		c.WatchDebounce = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	if err := envInt("EZCODE_MAX_FILE_SIZE_KB", &c.MaxFileSizeKB); err != nil {
		return err
	}
	if err := envInt("EZCODE_MAX_WORKERS", &c.MaxWorkers); err != nil {
		return err
	}
	if err := envInt("EZCODE_CACHE_SIZE", &c.CacheSize); err != nil {
		return err
	}
	if v, ok := lookupEnv("EZCODE_IGNORE_FILE"); ok {
		c.IgnoreFile = v
	}
	if v, ok := lookupEnv("EZCODE_PRUNE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid EZCODE_PRUNE %q: %w", v, err)
		}
		c.Prune = b
	}
	if v, ok := lookupEnv("EZCODE_WATCH_DEBOUNCE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid EZCODE_WATCH_DEBOUNCE %q: %w", v, err)
		}
		c.WatchDebounce = d
	}
	return nil
}

// Validate rejects settings no command can work with.
func (c Config) Validate() error {
	switch {
	case c.MaxFileSizeKB < 0:
		return fmt.Errorf("max_file_size_kb must not be negative, got %d", c.MaxFileSizeKB)
	case c.MaxWorkers < 0:
		return fmt.Errorf("max_workers must not be negative, got %d", c.MaxWorkers)
	case c.CacheSize < 0:
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	case c.WatchDebounce < 0:
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}

// IgnorePath resolves the ignore file against the project root.
// It returns "" when no ignore file is configured.
func (c Config) IgnorePath(root string) string {
	if c.IgnoreFile == "" {
		return ""
	}
	if filepath.IsAbs(c.IgnoreFile) {
		return c.IgnoreFile
	}
	return filepath.Join(root, c.IgnoreFile)
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func envInt(key string, dst *int) error {
	v, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}
