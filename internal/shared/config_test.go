package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:3000" {
			t.Errorf("expected api base url http://localhost:3000, got %s", config.API.BaseURL)
		}

		if config.Storage.BaseURL != "http://localhost:3000/storage/" {
			t.Errorf("expected storage base url http://localhost:3000/storage/, got %s", config.Storage.BaseURL)
		}

		if config.Playback.IntervalSeconds != 3 {
			t.Errorf("expected interval 3, got %v", config.Playback.IntervalSeconds)
		}

		if config.Playback.LightenAmount != 20 {
			t.Errorf("expected lighten amount 20, got %d", config.Playback.LightenAmount)
		}

		if config.Database.Path != "./slidex.db" {
			t.Errorf("expected database path ./slidex.db, got %s", config.Database.Path)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[api]
base_url = "https://slides.example.com"
timeout_seconds = 30

[playback]
interval_seconds = 5.5

[player]
command = "vlc"
args = ["--fullscreen"]
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://slides.example.com" {
			t.Errorf("expected overridden base url, got %s", config.API.BaseURL)
		}
		if config.Timeout() != 30*time.Second {
			t.Errorf("expected 30s timeout, got %v", config.Timeout())
		}
		if config.Playback.IntervalSeconds != 5.5 {
			t.Errorf("expected interval 5.5, got %v", config.Playback.IntervalSeconds)
		}
		if config.Player.Command != "vlc" || len(config.Player.Args) != 1 {
			t.Errorf("unexpected player config: %+v", config.Player)
		}
		if config.Storage.BaseURL != "http://localhost:3000/storage/" {
			t.Errorf("keys missing from the file should keep defaults, got storage %s", config.Storage.BaseURL)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api\nbase_url="), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("SLIDEX_API_URL", "http://api.test")
		t.Setenv("SLIDEX_LOG_LEVEL", "debug")

		config := DefaultConfig()
		if err := config.ApplyEnv(""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.API.BaseURL != "http://api.test" {
			t.Errorf("expected env api url, got %s", config.API.BaseURL)
		}
		if config.Logging.Level != "debug" {
			t.Errorf("expected env log level, got %s", config.Logging.Level)
		}
		if config.Storage.BaseURL != DefaultConfig().Storage.BaseURL {
			t.Errorf("unset env var should not change storage url")
		}
	})

	t.Run("ApplyEnv Dotenv File", func(t *testing.T) {
		dotenv := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(dotenv, []byte("SLIDEX_STORAGE_URL=http://files.test/\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Unsetenv("SLIDEX_STORAGE_URL") })

		config := DefaultConfig()
		if err := config.ApplyEnv(dotenv); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Storage.BaseURL != "http://files.test/" {
			t.Errorf("expected storage url from .env, got %s", config.Storage.BaseURL)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
		}{
			{"empty api url", func(c *Config) { c.API.BaseURL = "" }},
			{"empty storage url", func(c *Config) { c.Storage.BaseURL = "" }},
			{"zero interval", func(c *Config) { c.Playback.IntervalSeconds = 0 }},
			{"negative interval", func(c *Config) { c.Playback.IntervalSeconds = -1 }},
			{"negative workers", func(c *Config) { c.Cache.Workers = -2 }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				err := config.Validate()
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("Timeout Default", func(t *testing.T) {
		config := DefaultConfig()
		config.API.TimeoutSeconds = 0
		if config.Timeout() != 10*time.Second {
			t.Errorf("expected 10s default timeout, got %v", config.Timeout())
		}
	})
}
