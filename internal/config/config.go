package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	ReadingList ReadingListConfig `toml:"reading_list"`
	Fetch       FetchConfig       `toml:"fetch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int      `toml:"port"`
	AutoOpenBrowser bool     `toml:"auto_open_browser"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

// ReadingListConfig holds reading list storage settings.
type ReadingListConfig struct {
	StorageKey         string `toml:"storage_key"`
	DefaultSort        string `toml:"default_sort"`
	MaxConflictRetries int    `toml:"max_conflict_retries"`
}

// ServiceRetries converts MaxConflictRetries to readinglist.Options, where
// zero means "use the default" and a negative value disables retries.
func (c ReadingListConfig) ServiceRetries() int {
	if c.MaxConflictRetries == 0 {
		return -1
	}
	return c.MaxConflictRetries
}

// FetchConfig holds settings for fetching pages and feeds.
type FetchConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
	MaxConcurrent  int `toml:"max_concurrent"`
	MaxFeedItems   int `toml:"max_feed_items"`
}

// Timeout returns the fetch timeout as a duration.
func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

const defaultConfigContent = `[server]
port = 8080
auto_open_browser = true
allowed_origins = []              # e.g. ["chrome-extension://<id>"]; empty allows any origin

[reading_list]
storage_key = "readingList"       # Key the list is stored under (or set READLIST_STORAGE_KEY)
default_sort = "date-added"       # "date-added" or "title"
max_conflict_retries = 3

[fetch]
timeout_seconds = 30
max_concurrent = 10
max_feed_items = 50
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	// 0 is a meaningful retry count, so only a missing value gets the default.
	if !md.IsDefined("reading_list", "max_conflict_retries") {
		cfg.ReadingList.MaxConflictRetries = 3
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
// This catches cases like "port = 0" which would otherwise be silently
// replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("reading_list", "storage_key") && cfg.ReadingList.StorageKey == "" {
		return errors.New("invalid reading_list.storage_key: must not be empty")
	}
	if md.IsDefined("fetch", "timeout_seconds") && cfg.Fetch.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid fetch.timeout_seconds %d: must be >= 1", cfg.Fetch.TimeoutSeconds)
	}
	if md.IsDefined("fetch", "max_concurrent") && cfg.Fetch.MaxConcurrent < 1 {
		return fmt.Errorf("invalid fetch.max_concurrent %d: must be >= 1", cfg.Fetch.MaxConcurrent)
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	// auto_open_browser has the same limitation as any TOML bool: a missing
	// field reads as false. The default config file sets it to true.
	if cfg.ReadingList.StorageKey == "" {
		cfg.ReadingList.StorageKey = "readingList"
	}
	if cfg.ReadingList.DefaultSort == "" {
		cfg.ReadingList.DefaultSort = "date-added"
	}
	if cfg.Fetch.TimeoutSeconds == 0 {
		cfg.Fetch.TimeoutSeconds = 30
	}
	if cfg.Fetch.MaxConcurrent == 0 {
		cfg.Fetch.MaxConcurrent = 10
	}
	if cfg.Fetch.MaxFeedItems == 0 {
		cfg.Fetch.MaxFeedItems = 50
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("READLIST_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid READLIST_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("READLIST_STORAGE_KEY"); v != "" {
		cfg.ReadingList.StorageKey = v
	}
	return nil
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	switch cfg.ReadingList.DefaultSort {
	case "date-added", "title":
		// valid
	default:
		return fmt.Errorf("invalid reading_list.default_sort %q: must be \"date-added\" or \"title\"", cfg.ReadingList.DefaultSort)
	}

	for _, origin := range cfg.Server.AllowedOrigins {
		if origin == "" || origin == "*" {
			return fmt.Errorf("invalid server.allowed_origins entry %q: leave the list empty to allow any origin", origin)
		}
	}

	if cfg.ReadingList.MaxConflictRetries < 0 {
		return fmt.Errorf("invalid reading_list.max_conflict_retries %d: must be >= 0", cfg.ReadingList.MaxConflictRetries)
	}

	if cfg.Fetch.MaxFeedItems < 0 {
		return fmt.Errorf("invalid fetch.max_feed_items %d: must be >= 0", cfg.Fetch.MaxFeedItems)
	}

	return nil
}
