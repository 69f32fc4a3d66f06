// Package config loads and saves the groupwork configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config is the groupwork configuration, stored at <dir>/.groupwork/config.yaml.
type Config struct {
	TeacherID  string           `yaml:"teacher_id"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Assignment AssignmentConfig `yaml:"assignment"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Backend       string `yaml:"backend"` // sqlite, mongo
	SQLitePath    string `yaml:"sqlite_path,omitempty"`
	MongoURI      string `yaml:"mongo_uri,omitempty"`
	MongoDatabase string `yaml:"mongo_database,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// AssignmentConfig holds defaults for group assignment.
type AssignmentConfig struct {
	DefaultSize int `yaml:"default_size"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:       BackendSQLite,
			MongoDatabase: "groupwork",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Assignment: AssignmentConfig{
			DefaultSize: 3,
		},
	}
}

// Path returns the config file path under dir.
func Path(dir string) string {
	return filepath.Join(dir, ".groupwork", "config.yaml")
}

// Load reads the config from dir, falling back to defaults when no file exists.
// Environment overrides are applied in both cases.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path(dir))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes cfg to dir, creating the .groupwork directory if needed.
func Save(dir string, cfg *Config) error {
	path := Path(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GROUPWORK_TEACHER"); v != "" {
		c.TeacherID = v
	}
	if v := os.Getenv("GROUPWORK_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("GROUPWORK_SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := os.Getenv("GROUPWORK_MONGO_URI"); v != "" {
		c.Storage.MongoURI = v
	}
	if v := os.Getenv("GROUPWORK_MONGO_DATABASE"); v != "" {
		c.Storage.MongoDatabase = v
	}
	if v := os.Getenv("GROUPWORK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GROUPWORK_DEFAULT_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Assignment.DefaultSize = n
		}
	}
}

// ValidBackends lists the supported storage backends.
var ValidBackends = []string{BackendSQLite, BackendMongo}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
	case BackendMongo:
		if c.Storage.MongoURI == "" {
			return fmt.Errorf("mongo backend requires storage.mongo_uri (or GROUPWORK_MONGO_URI)")
		}
		if c.Storage.MongoDatabase == "" {
			return fmt.Errorf("mongo backend requires storage.mongo_database")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s (valid: %v)", c.Storage.Backend, ValidBackends)
	}

	if c.Assignment.DefaultSize < 0 {
		return fmt.Errorf("assignment.default_size must not be negative, got %d", c.Assignment.DefaultSize)
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %s (valid: json, console)", c.Logging.Format)
	}

	return nil
}
