// Package config manages the wizard's own tool settings with viper:
// defaults, a TOML file, WPSWIZARD_* environment variables, and flag
// overrides, in that precedence order from lowest to highest.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"wpswizard-cli/internal/interfaces"
)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new settings manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("WPSWIZARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default settings values
func setDefaults(v *viper.Viper) {
	v.SetDefault("output_file", "namelist.wps")
	v.SetDefault("existing_file", "namelist.wps")
	v.SetDefault("geog_data_path", "/path/to/geog")
	v.SetDefault("quit_word", "q")
	v.SetDefault("target", "file")
	v.SetDefault("date_format", "YYYY-MM-DD_HH:MM:SS")
}

// Load loads settings from the specified path. An absent file is not an
// error; defaults apply.
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".config", "wpswizard", "config.toml")
	}

	path = expandPath(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()
	m.applyFlagOverrides(config)
	return config, nil
}

// applyFlagOverrides applies flag values over the settings
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	if val, exists := m.flags["output_file"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.OutputFile = expandPath(str)
		}
	}

	if val, exists := m.flags["existing_file"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.ExistingFile = expandPath(str)
		}
	}

	if val, exists := m.flags["geog_data_path"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.GeogDataPath = expandPath(str)
		}
	}

	if val, exists := m.flags["target"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.Target = str
		}
	}
}

// Validate validates the settings values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	validTargets := map[string]bool{
		"file":      true,
		"stdout":    true,
		"clipboard": true,
	}
	if !validTargets[config.Target] {
		return fmt.Errorf("invalid target: %s (must be 'file', 'stdout', or 'clipboard')", config.Target)
	}

	if config.QuitWord == "" || strings.ContainsAny(config.QuitWord, " \t") {
		return fmt.Errorf("invalid quit_word: %q (must be a single non-empty token)", config.QuitWord)
	}

	if config.OutputFile == "" {
		return fmt.Errorf("output_file must not be empty")
	}

	if config.DateFormat == "" {
		return fmt.Errorf("date_format must not be empty")
	}

	return nil
}

// getConfigFromViper converts viper settings to a Config struct.
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		OutputFile:   expandPath(m.v.GetString("output_file")),
		ExistingFile: expandPath(m.v.GetString("existing_file")),
		GeogDataPath: expandPath(m.v.GetString("geog_data_path")),
		QuitWord:     m.v.GetString("quit_word"),
		Target:       m.v.GetString("target"),
		DateFormat:   m.v.GetString("date_format"),
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
