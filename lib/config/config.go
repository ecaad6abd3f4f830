// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/lobby/lib/viewport"
)

// Environment variables read by [Load].
const (
	EnvConfig    = "LOBBY_CONFIG"
	EnvServerURL = "LOBBY_SERVER_URL"
	EnvUsername  = "LOBBY_USERNAME"
	EnvLogLevel  = "LOBBY_LOG_LEVEL"
)

// Config is the master configuration for lobby.
type Config struct {
	// Server locates the room backend.
	Server ServerConfig `yaml:"server"`

	// Polling controls background refresh of the listing.
	Polling PollingConfig `yaml:"polling"`

	// Viewport controls the compact/full layout switch.
	Viewport ViewportConfig `yaml:"viewport"`

	// Join configures the join flow.
	Join JoinConfig `yaml:"join"`

	// Notices configures transient status messages in the TUI.
	Notices NoticesConfig `yaml:"notices"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`
}

// ServerConfig locates the room backend.
type ServerConfig struct {
	// URL is the backend root, e.g. http://localhost:8000.
	URL string `yaml:"url"`

	// Timeout bounds each request.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// PollingConfig controls background refresh.
type PollingConfig struct {
	// Interval between listing refreshes while the directory is shown.
	// Default: 30s
	Interval time.Duration `yaml:"interval"`
}

// ViewportConfig controls the layout switch.
type ViewportConfig struct {
	// Threshold is the widest terminal (in columns) that still gets
	// the compact card layout.
	Threshold int `yaml:"threshold"`

	CompactItemsPerPage int `yaml:"compact_items_per_page"`
	FullItemsPerPage    int `yaml:"full_items_per_page"`

	// QuietWindow is how long resizing must pause before the layout
	// is re-evaluated.
	QuietWindow time.Duration `yaml:"quiet_window"`
}

// JoinConfig configures the join flow.
type JoinConfig struct {
	// Username, when set, skips the username prompt.
	Username string `yaml:"username"`

	// AttemptLimit join attempts are allowed per room per
	// AttemptWindow. Zero disables the limit.
	AttemptLimit  int           `yaml:"attempt_limit"`
	AttemptWindow time.Duration `yaml:"attempt_window"`
}

// NoticesConfig configures status-line notices.
type NoticesConfig struct {
	// Fade is how long a notice stays visible.
	// Default: 5s
	Fade time.Duration `yaml:"fade"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is a zerolog level name.
	Level string `yaml:"level"`

	// File receives the interactive browser's log. Empty discards it,
	// since stderr belongs to the terminal UI.
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	policy := viewport.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Polling: PollingConfig{
			Interval: 30 * time.Second,
		},
		Viewport: ViewportConfig{
			Threshold:           policy.Threshold,
			CompactItemsPerPage: policy.CompactItemsPerPage,
			FullItemsPerPage:    policy.FullItemsPerPage,
			QuietWindow:         policy.QuietWindow,
		},
		Join: JoinConfig{
			AttemptLimit:  5,
			AttemptWindow: time.Minute,
		},
		Notices: NoticesConfig{
			Fade: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the file named by path
// (or LOBBY_CONFIG when path is empty), and the environment. A .env
// file in the working directory is read first; variables already set
// in the process environment win over it.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnvironment()
	cfg.expandVariables()
	return cfg, nil
}

// LoadFile loads configuration from a specific file over the defaults.
// The environment is not consulted.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

// loadFile merges a YAML file into the current config. Unknown keys
// are rejected so a typo does not silently fall back to a default.
func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironment applies LOBBY_* overrides.
func (c *Config) applyEnvironment() {
	if value := strings.TrimSpace(os.Getenv(EnvServerURL)); value != "" {
		c.Server.URL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvUsername)); value != "" {
		c.Join.Username = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvLogLevel)); value != "" {
		c.Log.Level = value
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// path-like fields.
func (c *Config) expandVariables() {
	c.Log.File = expandVars(c.Log.File)
	c.Server.URL = expandVars(c.Server.URL)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// ViewportPolicy returns the viewport.Config these settings describe.
func (c *Config) ViewportPolicy() viewport.Config {
	return viewport.Config{
		Threshold:           c.Viewport.Threshold,
		CompactItemsPerPage: c.Viewport.CompactItemsPerPage,
		FullItemsPerPage:    c.Viewport.FullItemsPerPage,
		QuietWindow:         c.Viewport.QuietWindow,
	}
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.URL == "" {
		errs = append(errs, errors.New("server.url is required"))
	} else if parsed, err := url.Parse(c.Server.URL); err != nil || parsed.Host == "" ||
		(parsed.Scheme != "http" && parsed.Scheme != "https") {
		errs = append(errs, fmt.Errorf("server.url must be an http or https URL, got %q", c.Server.URL))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout))
	}
	if c.Polling.Interval <= 0 {
		errs = append(errs, fmt.Errorf("polling.interval must be positive, got %s", c.Polling.Interval))
	}
	if err := c.ViewportPolicy().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Join.AttemptLimit < 0 {
		errs = append(errs, fmt.Errorf("join.attempt_limit must not be negative, got %d", c.Join.AttemptLimit))
	}
	if c.Join.AttemptLimit > 0 && c.Join.AttemptWindow <= 0 {
		errs = append(errs, fmt.Errorf("join.attempt_window must be positive when a limit is set, got %s", c.Join.AttemptWindow))
	}
	if c.Notices.Fade <= 0 {
		errs = append(errs, fmt.Errorf("notices.fade must be positive, got %s", c.Notices.Fade))
	}

	return errors.Join(errs...)
}
