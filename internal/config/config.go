package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// KIDTASK_STORAGE_DRIVER or KIDTASK_LOG_LEVEL.
const EnvPrefix = "KIDTASK_"

// Storage drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config is the root configuration for a kidtask directory.
type Config struct {
	Version int     `yaml:"version"`
	Storage Storage `yaml:"storage" envPrefix:"STORAGE_"`
	Log     Log     `yaml:"log" envPrefix:"LOG_"`
}

// Storage selects where tasks and wishes are kept. Relative paths are
// resolved against the kidtask directory.
type Storage struct {
	Driver     string `yaml:"driver" env:"DRIVER"`           // json or sqlite
	TasksFile  string `yaml:"tasks_file" env:"TASKS_FILE"`   // json driver
	WishesFile string `yaml:"wishes_file" env:"WISHES_FILE"` // json driver
	DBFile     string `yaml:"db_file" env:"DB_FILE"`         // sqlite driver
}

// Log configures the structured logger.
type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"FORMAT"` // text or json
}

// Load reads and parses the config file at the given path, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.fillDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the config written by `kidtask init`.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Storage: Storage{
			Driver:     DriverJSON,
			TasksFile:  "tasks.json",
			WishesFile: "wishes.json",
			DBFile:     "kidtask.db",
		},
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// fillDefaults restores defaults for keys that were present but empty.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.Storage.Driver == "" {
		c.Storage.Driver = d.Storage.Driver
	}
	if c.Storage.TasksFile == "" {
		c.Storage.TasksFile = d.Storage.TasksFile
	}
	if c.Storage.WishesFile == "" {
		c.Storage.WishesFile = d.Storage.WishesFile
	}
	if c.Storage.DBFile == "" {
		c.Storage.DBFile = d.Storage.DBFile
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	switch c.Storage.Driver {
	case DriverJSON, DriverSQLite:
	default:
		return fmt.Errorf("storage.driver must be 'json' or 'sqlite', got %q", c.Storage.Driver)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", c.Log.Format)
	}
	return nil
}

// TasksPath returns the tasks document path inside dir.
func (c *Config) TasksPath(dir string) string {
	return resolve(dir, c.Storage.TasksFile)
}

// WishesPath returns the wishes document path inside dir.
func (c *Config) WishesPath(dir string) string {
	return resolve(dir, c.Storage.WishesFile)
}

// DBPath returns the SQLite database path inside dir.
func (c *Config) DBPath(dir string) string {
	return resolve(dir, c.Storage.DBFile)
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
