package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// Store drivers understood by [StoreConfig.Driver].
const (
	DriverSQLite   = "sqlite"
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config represents the application configuration loaded from a TOML file.
//
// Values from the file can be overridden by MEDLEY_* environment variables.
type Config struct {
	Store    StoreConfig    `toml:"store" envPrefix:"MEDLEY_STORE_"`
	Database DatabaseConfig `toml:"database" envPrefix:"MEDLEY_DATABASE_"`
	Log      LogConfig      `toml:"log" envPrefix:"MEDLEY_LOG_"`
	Session  SessionConfig  `toml:"session" envPrefix:"MEDLEY_SESSION_"`
}

// StoreConfig selects and locates the account store.
type StoreConfig struct {
	Driver  string `toml:"driver" env:"DRIVER"`
	Path    string `toml:"path" env:"PATH"`
	CSVPath string `toml:"csv_path" env:"CSV_PATH"`
	DSN     string `toml:"dsn" env:"DSN"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	MaxOpenConns int `toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns int `toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level   string `toml:"level" env:"LEVEL"`
	TUIFile string `toml:"tui_file" env:"TUI_FILE"`
}

// SessionConfig controls the interactive correction loops (login, email).
type SessionConfig struct {
	MaxAttempts int `toml:"max_attempts" env:"MAX_ATTEMPTS"`
}

// Validate checks that the configuration names a usable store.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store.path is required for the sqlite driver", ErrInvalidConfig)
		}
	case DriverCSV:
		if c.Store.CSVPath == "" {
			return fmt.Errorf("%w: store.csv_path is required for the csv driver", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn is required for the postgres driver", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Store.Driver)
	}

	if c.Session.MaxAttempts < 1 {
		return fmt.Errorf("%w: session.max_attempts must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path, then applies environment overrides.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnv overrides config values with any MEDLEY_* environment variables that are set.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
