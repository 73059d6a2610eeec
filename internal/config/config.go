// Package config provides configuration types and defaults for registrar.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/registrar/internal/log"
)

// Config holds all configuration options for registrar.
type Config struct {
	// DataDir is the directory holding the flat data files
	// (users.txt, courses.txt, enrollments.txt).
	DataDir string `mapstructure:"data_dir"`

	// SeedFile optionally points at a YAML seed document applied on
	// first run. Empty means the built-in seed.
	SeedFile string `mapstructure:"seed_file"`

	// AutoRefresh reloads the catalog when the data files change on
	// disk (e.g. edited by another process or by hand).
	AutoRefresh bool `mapstructure:"auto_refresh"`

	// AutoRefreshDebounce is the quiet period in milliseconds before a
	// file change triggers a reload.
	AutoRefreshDebounce int `mapstructure:"auto_refresh_debounce"`

	// CatalogCacheTTL is the course listing cache lifetime in seconds.
	CatalogCacheTTL int `mapstructure:"catalog_cache_ttl"`

	UI    UIConfig    `mapstructure:"ui"`
	Theme ThemeConfig `mapstructure:"theme"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds color customization options.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"`
	Subtle    string `mapstructure:"subtle"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

// Defaults returns the configuration used when no config file exists.
func Defaults() Config {
	return Config{
		DataDir:             "data",
		AutoRefresh:         true,
		AutoRefreshDebounce: 300,
		CatalogCacheTTL:     5,
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
		Theme: ThemeConfig{
			Highlight: "#7C3AED",
			Subtle:    "#6B7280",
			Error:     "#EF4444",
			Success:   "#10B981",
		},
	}
}

// DebounceInterval returns the auto-refresh debounce as a duration,
// falling back to the default when the configured value is not positive.
func (c Config) DebounceInterval() time.Duration {
	if c.AutoRefreshDebounce <= 0 {
		return time.Duration(Defaults().AutoRefreshDebounce) * time.Millisecond
	}
	return time.Duration(c.AutoRefreshDebounce) * time.Millisecond
}

// CacheTTL returns the catalog cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CatalogCacheTTL <= 0 {
		return time.Duration(Defaults().CatalogCacheTTL) * time.Second
	}
	return time.Duration(c.CatalogCacheTTL) * time.Second
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style: invalid style %q (must be \"dark\" or \"light\")", c.UI.MarkdownStyle)
	}
	return nil
}

// DefaultConfigTemplate returns the default config file content with
// explanatory comments.
func DefaultConfigTemplate() string {
	return `# registrar configuration

# Directory holding the flat data files
# (users.txt, courses.txt, enrollments.txt)
data_dir: data

# YAML seed document applied on first run (empty = built-in seed)
# seed_file: seed.yaml

# Reload the catalog when the data files change on disk
auto_refresh: true

# Quiet period in milliseconds before a file change triggers a reload
auto_refresh_debounce: 300

# Course listing cache lifetime in seconds
catalog_cache_ttl: 5

ui:
  show_status_bar: true
  markdown_style: dark  # dark (default) or light

# Hex colors used across the interface
theme:
  highlight: "#7C3AED"
  subtle: "#6B7280"
  error: "#EF4444"
  success: "#10B981"
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
