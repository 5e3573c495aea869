// Copyright (c) 2025 N. Lokeshraj
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for minigemini.
//
// TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.minigemini/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete minigemini configuration.
type Config struct {
	// APIURL is the completion endpoint to POST chat requests to.
	APIURL string `toml:"api_url"`
	// DataDir is the directory holding conversation and auth state
	// (empty = default ~/.minigemini).
	DataDir string `toml:"data_dir"`
	// MaxConversations is the retention cap on stored conversations.
	MaxConversations int `toml:"max_conversations"`
	// RequestTimeoutSecs is the per-request timeout for the remote call.
	RequestTimeoutSecs int `toml:"request_timeout_secs"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark" or "light"
	Theme string `toml:"theme"`
	// ShowSidebar controls whether the conversation sidebar starts open
	ShowSidebar bool `toml:"show_sidebar"`
}

// RequestTimeout returns the remote-call timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		APIURL:             "http://localhost:5000/api/chat",
		DataDir:            "",
		MaxConversations:   10,
		RequestTimeoutSecs: 60,

		UI: UIConfig{
			Theme:       "dark",
			ShowSidebar: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the minigemini configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".minigemini"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file, falling back to
// built-in defaults when the file is absent. Environment overrides are
// applied last.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.APIURL == "" {
		errs = append(errs, ValidationError{
			Field:   "api_url",
			Message: "must not be empty",
		})
	} else if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api_url",
			Message: fmt.Sprintf("invalid URL '%s'", c.APIURL),
		})
	}

	if c.MaxConversations < 1 {
		errs = append(errs, ValidationError{
			Field:   "max_conversations",
			Message: fmt.Sprintf("must be at least 1, got %d", c.MaxConversations),
		})
	}

	if c.RequestTimeoutSecs < 1 || c.RequestTimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "request_timeout_secs",
			Message: fmt.Sprintf("must be 1-600, got %d", c.RequestTimeoutSecs),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
	}
	if c.MaxConversations == 0 {
		c.MaxConversations = defaults.MaxConversations
	}
	if c.RequestTimeoutSecs == 0 {
		c.RequestTimeoutSecs = defaults.RequestTimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - MINIGEMINI_API_URL: overrides api_url
//   - MINIGEMINI_DATA_DIR: overrides data_dir
//   - MINIGEMINI_MAX_CONVERSATIONS: overrides max_conversations
//   - MINIGEMINI_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if apiURL := os.Getenv("MINIGEMINI_API_URL"); apiURL != "" {
		c.APIURL = apiURL
	}

	if dataDir := os.Getenv("MINIGEMINI_DATA_DIR"); dataDir != "" {
		c.DataDir = dataDir
	}

	if maxConvs := os.Getenv("MINIGEMINI_MAX_CONVERSATIONS"); maxConvs != "" {
		if n, err := strconv.Atoi(maxConvs); err == nil && n > 0 {
			c.MaxConversations = n
		}
	}

	if theme := os.Getenv("MINIGEMINI_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# minigemini configuration file")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
