package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration, including the watchlist.
type Config struct {
	Watchlist []string `yaml:"watchlist"`
	Database  struct {
		PostgresDSN string `yaml:"postgres_dsn"`
		SQLitePath  string `yaml:"sqlite_path"`
		Strict      bool   `yaml:"strict"`
	} `yaml:"database"`
	History struct {
		Years int `yaml:"years"`
	} `yaml:"history"`
	Fundamentals struct {
		CacheFile         string `yaml:"cache_file"`
		TTLDays           int    `yaml:"ttl_days"`
		FetchDelaySeconds int    `yaml:"fetch_delay_seconds"`
	} `yaml:"fundamentals"`
	Provider struct {
		RetryAttempts     int `yaml:"retry_attempts"`
		RetryDelaySeconds int `yaml:"retry_delay_seconds"`
	} `yaml:"provider"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MARKETDB_DSN"); v != "" {
		cfg.Database.PostgresDSN = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("STRICT_STORE"); v == "true" {
		cfg.Database.Strict = true
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = splitTickers(v)
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/morningbrief.db"
	}
	if cfg.History.Years == 0 {
		cfg.History.Years = 5
	}
	if cfg.Fundamentals.CacheFile == "" {
		cfg.Fundamentals.CacheFile = "data/fundamentals.json"
	}
	if cfg.Fundamentals.TTLDays == 0 {
		cfg.Fundamentals.TTLDays = 7
	}
	if cfg.Fundamentals.FetchDelaySeconds == 0 {
		cfg.Fundamentals.FetchDelaySeconds = 1
	}
	if cfg.Provider.RetryAttempts == 0 {
		cfg.Provider.RetryAttempts = 3
	}
	if cfg.Provider.RetryDelaySeconds == 0 {
		cfg.Provider.RetryDelaySeconds = 2
	}
	if cfg.Schedule.DailyCron == "" {
		// Weekday mornings, 07:30 server time.
		cfg.Schedule.DailyCron = "0 30 7 * * 1-5"
	}

	// Keep file paths stable no matter where the process was started from.
	cfg.Database.SQLitePath = absolutize(cfg.Database.SQLitePath)
	cfg.Fundamentals.CacheFile = absolutize(cfg.Fundamentals.CacheFile)

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must contain at least one ticker")
	}
	if c.History.Years <= 0 {
		return fmt.Errorf("history.years must be positive")
	}
	return nil
}

// absolutize resolves a relative path against the executable's directory so
// cron invocations from arbitrary working directories hit the same files.
func absolutize(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	return filepath.Join(filepath.Dir(exe), path)
}

func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(strings.ToUpper(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
