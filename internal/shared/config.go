package shared

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

//go:embed config.example.toml
var exampleConf []byte

// envPrefix namespaces environment overrides, e.g. SLIDEX_API_URL.
const envPrefix = "SLIDEX"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Cache    CacheConfig    `toml:"cache"`
	Playback PlaybackConfig `toml:"playback"`
	Player   PlayerConfig   `toml:"player"`
	Logging  LoggingConfig  `toml:"logging"`
}

// APIConfig contains slide REST API settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// StorageConfig contains the static file store location. Files are addressed as base_url + path.
type StorageConfig struct {
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CacheConfig contains blob cache and prefetch settings.
type CacheConfig struct {
	Path      string  `toml:"path"`
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"`
}

// PlaybackConfig contains slideshow defaults.
type PlaybackConfig struct {
	IntervalSeconds float64 `toml:"interval_seconds"`
	LightenAmount   int     `toml:"lighten_amount"`
}

// PlayerConfig contains the external player used for video files.
type PlayerConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// LoggingConfig contains log file and level settings.
type LoggingConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// envOverrides are read from the environment (and an optional .env file) after the TOML file.
type envOverrides struct {
	APIURL     string `envconfig:"API_URL"`
	StorageURL string `envconfig:"STORAGE_URL"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
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
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads dotenvPath when it exists and overlays SLIDEX_* environment variables onto c.
func (c *Config) ApplyEnv(dotenvPath string) error {
	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			if err := godotenv.Load(dotenvPath); err != nil {
				return fmt.Errorf("failed to load %s: %w", dotenvPath, err)
			}
		}
	}

	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if env.APIURL != "" {
		c.API.BaseURL = env.APIURL
	}
	if env.StorageURL != "" {
		c.Storage.BaseURL = env.StorageURL
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}
	return nil
}

// Validate reports configuration values the client cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalidConfig)
	}
	if c.Storage.BaseURL == "" {
		return fmt.Errorf("%w: storage.base_url is empty", ErrInvalidConfig)
	}
	if iv := c.Playback.IntervalSeconds; iv <= 0 || math.IsNaN(iv) || math.IsInf(iv, 0) {
		return fmt.Errorf("%w: playback.interval_seconds must be positive, got %v", ErrInvalidConfig, iv)
	}
	if c.Cache.Workers < 0 {
		return fmt.Errorf("%w: cache.workers must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Timeout returns the API request timeout, defaulting to ten seconds.
func (c *Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}
