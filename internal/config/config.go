// Package config provides configuration management for the tokengen CLI.
// It handles reading and writing the profile configuration file.
package config

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tokengen-cli/tokengen/internal/profile"
)

// ConfigFileName is the name of the config file inside the config directory.
const ConfigFileName = "config.json"

// Configuration is the on-disk config file shape. JSON keys stay PascalCase
// for compatibility with existing tokengen config files.
type Configuration struct {
	// DefaultProfile names the profile used when none is requested.
	DefaultProfile string `json:"DefaultProfile,omitempty"`

	// Defaults fill any profile field still empty after overrides.
	Defaults Defaults `json:"Defaults,omitempty"`

	// Profiles is the ordered list of stored profiles.
	Profiles []profile.Record `json:"Profiles,omitempty"`
}

// Defaults are global fallback values applied per field during resolution.
type Defaults struct {
	ClientID  string `json:"ClientId,omitempty"`
	Secret    string `json:"Secret,omitempty"`
	Tenant    string `json:"Tenant,omitempty"`
	Authority string `json:"Authority,omitempty"`
	Scope     string `json:"Scope,omitempty"`
}

// FindProfile returns the stored record with the given name.
func (c *Configuration) FindProfile(name string) (profile.Record, bool) {
	for _, rec := range c.Profiles {
		if rec.Name == name {
			return rec, true
		}
	}
	return profile.Record{}, false
}

// Manager handles configuration file operations.
type Manager struct {
	configPath string
	logger     *slog.Logger
}

// NewManager creates a configuration manager rooted at the resolved paths.
func NewManager(paths Paths, logger *slog.Logger) *Manager {
	return &Manager{
		configPath: filepath.Join(paths.ConfigDir, ConfigFileName),
		logger:     logger,
	}
}

// Load reads the configuration from disk. A missing or malformed file
// degrades to an empty configuration with a logged warning, so the CLI still
// works from flags alone.
func (m *Manager) Load() *Configuration {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			m.logger.Warn("unable to read config file", "path", m.configPath, "error", err)
		}
		return &Configuration{}
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		m.logger.Warn("unable to parse config file", "path", m.configPath, "error", err)
		return &Configuration{}
	}
	return &cfg
}

// Save writes the configuration with owner-only permissions.
func (m *Manager) Save(cfg *Configuration) error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0600)
}
