package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the importer configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Import   ImportConfig   `mapstructure:"import"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	URL         string `mapstructure:"url"`
	Driver      string `mapstructure:"driver"`
	SQLLogLevel string `mapstructure:"sql_log_level"`
}

// ImportConfig holds import pipeline settings
type ImportConfig struct {
	BatchSize int `mapstructure:"batch_size"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
	File   string `mapstructure:"file"`
}

// Load loads configuration from an optional config file, a local .env file,
// and the environment. Environment values win over file values. The
// connection string is read from DATABASE_URL, falling back to the legacy
// SUPABASE_DB_URL alias.
func Load(configPath string) (*Config, error) {
	// A local .env takes precedence over the inherited shell environment,
	// matching the historical importer behavior.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Overload(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v := viper.New()

	// Set defaults first
	setDefaults(v)

	// Read config file (optional)
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// Config file not found, use defaults
		}
	}

	// DATABASE_URL first, SUPABASE_DB_URL kept for backwards compatibility
	if err := v.BindEnv("database.url", "DATABASE_URL", "SUPABASE_DB_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.sql_log_level", "silent")

	// Import defaults
	v.SetDefault("import.batch_size", 500)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
}
