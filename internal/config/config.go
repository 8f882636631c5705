package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// AppName is the directory name used under ~/.config
const AppName = "todo-tui"

// Config holds the application configuration
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects the key-value backend the task list lives in
type StorageConfig struct {
	Backend string   `toml:"backend"` // sqlite, file, memory; empty picks the first that works
	Path    string   `toml:"path"`
	Key     string   `toml:"key"`
	Timeout Duration `toml:"timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Path string `toml:"path"`
}

// Duration is a time.Duration written as a string like "5s" in TOML
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText formats the duration
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Dir returns the configuration directory, ~/.config/todo-tui
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", AppName)
}

// Default returns the default configuration
func Default() *Config {
	dir := Dir()
	return &Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    filepath.Join(dir, "todo.db"),
			Key:     "todoList",
			Timeout: Duration{5 * time.Second},
		},
		Log: LogConfig{
			Path: filepath.Join(dir, "todo-tui.log"),
		},
	}
}

// Path returns the standard config file location
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// LoadFrom loads configuration from a specific path
func LoadFrom(configPath string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// No config file, return defaults
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand home directory in paths
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	return cfg, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return nil
}
