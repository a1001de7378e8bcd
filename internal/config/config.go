// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Data source configuration
	Source SourceConfig `toml:"source"`

	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Analysis tuning
	Analysis AnalysisConfig `toml:"analysis"`

	// HTTP API server configuration
	Server ServerConfig `toml:"server"`

	// Snapshot directory watcher configuration
	Watch WatchConfig `toml:"watch"`
}

// SourceConfig contains data source settings.
type SourceConfig struct {
	BaseURL         string `toml:"base_url"`          // Limitless API base URL
	Season          string `toml:"season"`            // Season identifier (e.g., "A3b")
	CacheTTL        string `toml:"cache_ttl"`         // API cache TTL (e.g., "15m")
	RateLimitPerSec int    `toml:"rate_limit_per_sec"` // Max API requests per second
	Offline         bool   `toml:"offline"`           // Use fixtures only, skip the live source
	SnapshotFixture string `toml:"snapshot_fixture"`  // Fallback snapshot JSON path
	MatchupFixture  string `toml:"matchup_fixture"`   // Fallback matchup JSON path
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path          string `toml:"path"`           // SQLite database path
	KeepSnapshots int    `toml:"keep_snapshots"` // Snapshots retained per season (0 = unlimited)
}

// AnalysisConfig contains ranking and lineup tuning.
type AnalysisConfig struct {
	CoverageTarget float64 `toml:"coverage_target"` // Cumulative share analyzed (percent)
	TrendWindow    int     `toml:"trend_window"`    // Snapshots considered for trend prediction (0 = all)
}

// ServerConfig contains HTTP API server settings.
type ServerConfig struct {
	Addr            string `toml:"addr"`             // Listen address (e.g., ":8080")
	ShutdownTimeout string `toml:"shutdown_timeout"` // Graceful shutdown window (e.g., "10s")
}

// WatchConfig contains snapshot directory watcher settings.
type WatchConfig struct {
	Enabled      bool   `toml:"enabled"`       // Watch a directory for snapshot files
	Dir          string `toml:"dir"`           // Directory to watch
	PollInterval string `toml:"poll_interval"` // Backup scan interval (e.g., "1m")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:         "https://play.limitlesstcg.com",
			Season:          "A3b",
			CacheTTL:        "15m",
			RateLimitPerSec: 2,
		},
		Database: DatabaseConfig{
			Path:          "",
			KeepSnapshots: 90,
		},
		Analysis: AnalysisConfig{
			CoverageTarget: 80,
			TrendWindow:    0,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
		},
		Watch: WatchConfig{
			Enabled:      false,
			Dir:          "",
			PollInterval: "1m",
		},
	}
}

// DefaultPath returns the default configuration file path, creating the
// config directory if needed.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".tcgp-meta")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from path. An empty path uses the
// default location; a missing file returns the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to path. An empty path uses the default
// location.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Source.CacheTTL); err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", c.Source.CacheTTL, err)
	}

	if c.Source.RateLimitPerSec < 0 {
		return fmt.Errorf("rate limit cannot be negative: %d", c.Source.RateLimitPerSec)
	}

	if c.Database.KeepSnapshots < 0 {
		return fmt.Errorf("keep snapshots cannot be negative: %d", c.Database.KeepSnapshots)
	}

	if c.Analysis.CoverageTarget <= 0 || c.Analysis.CoverageTarget > 100 {
		return fmt.Errorf("coverage target must be in (0, 100]: %g", c.Analysis.CoverageTarget)
	}

	if c.Analysis.TrendWindow < 0 {
		return fmt.Errorf("trend window cannot be negative: %d", c.Analysis.TrendWindow)
	}

	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown timeout %q: %w", c.Server.ShutdownTimeout, err)
	}

	if _, err := time.ParseDuration(c.Watch.PollInterval); err != nil {
		return fmt.Errorf("invalid poll interval %q: %w", c.Watch.PollInterval, err)
	}

	if c.Watch.Enabled && c.Watch.Dir == "" {
		return fmt.Errorf("watch enabled but no directory configured")
	}

	return nil
}

// GetCacheTTL returns the source cache TTL as a duration.
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.Source.CacheTTL)
}

// GetShutdownTimeout returns the server shutdown timeout as a duration.
func (c *Config) GetShutdownTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.ShutdownTimeout)
}

// GetWatchPollInterval returns the watcher backup scan interval as a duration.
func (c *Config) GetWatchPollInterval() (time.Duration, error) {
	return time.ParseDuration(c.Watch.PollInterval)
}
