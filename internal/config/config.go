package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// AppName names the config directory and keyring service
const AppName = "clientdesk"

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database" koanf:"database"`

	// Log file settings
	Log LogConfig `yaml:"log" koanf:"log"`

	// Spreadsheet export settings
	Export ExportConfig `yaml:"export" koanf:"export"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" koanf:"path"` // Path to the encrypted SQLite database
}

type LogConfig struct {
	Path  string `yaml:"path" koanf:"path"`   // Log file; empty disables logging
	Level string `yaml:"level" koanf:"level"` // debug, info, warn, error
}

type ExportConfig struct {
	OutputDir string `yaml:"output_dir" koanf:"output_dir"` // Directory for generated spreadsheets
}

// configDir returns ~/.config/clientdesk
func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", AppName)
}

// DefaultConfigPath returns ~/.config/clientdesk/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := configDir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "clientdesk.db"),
		},
		Log: LogConfig{
			Path:  filepath.Join(dir, "clientdesk.log"),
			Level: "info",
		},
		Export: ExportConfig{
			OutputDir: filepath.Join(dir, "exports"),
		},
	}
}

// Validate returns an error if the config cannot be used
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path is required")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (database, logs, exports)
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Database.Path), c.Export.OutputDir}
	if c.Log.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Log.Path))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}
