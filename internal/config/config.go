// Package config loads daybook's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"

	dirName  = ".daybook"
	fileName = "config.yaml"
	dbName   = "daybook.db"
)

// Config holds daybook configuration.
type Config struct {
	// DataDir is where the store and lock file live. A leading ~ expands
	// to the home directory.
	DataDir string `yaml:"data_dir"`
	// Backend selects the storage: sqlite or file.
	Backend string `yaml:"backend"`
	// UndoWindow is how long a deleted task can be restored.
	UndoWindow time.Duration `yaml:"undo_window"`
	// FocusLimit caps the number of incomplete focus tasks.
	FocusLimit int `yaml:"focus_limit"`
	// Reminder configures event notifications.
	Reminder ReminderConfig `yaml:"reminder"`
}

// ReminderConfig configures the reminder scheduler.
type ReminderConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	// Command is the notifier; {title} and {body} in Args are replaced
	// per reminder.
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:    filepath.Join("~", dirName),
		Backend:    BackendSQLite,
		UndoWindow: 5 * time.Second,
		FocusLimit: 3,
		Reminder: ReminderConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
			Command:  "notify-send",
			Args:     []string{"{title}", "{body}"},
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DefaultPath returns ~/.daybook/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// LoadConfigFromHome loads configuration from ~/.daybook/config.yaml.
func LoadConfigFromHome() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// SaveConfig saves configuration to a YAML file, creating parent directories if needed.
func SaveConfig(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Backend != BackendSQLite && c.Backend != BackendFile {
		return fmt.Errorf("invalid backend %q, must be: sqlite or file", c.Backend)
	}
	if c.UndoWindow <= 0 {
		return fmt.Errorf("undo_window must be positive")
	}
	if c.FocusLimit < 1 {
		return fmt.Errorf("focus_limit must be at least 1")
	}
	if c.Reminder.Enabled {
		if c.Reminder.Interval < time.Second {
			return fmt.Errorf("reminder.interval must be at least 1s")
		}
		if c.Reminder.Command == "" {
			return fmt.Errorf("reminder.command must be set when reminders are enabled")
		}
	}
	return nil
}

// ResolveDataDir returns DataDir with a leading ~ expanded.
func (c *Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home dir: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return dir, nil
}

// DBPath returns the SQLite file path inside the data directory.
func (c *Config) DBPath() (string, error) {
	dir, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbName), nil
}
