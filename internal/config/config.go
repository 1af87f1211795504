// Package config loads the rate prompt thresholds and backend settings.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, then APPRATER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDaysUntilPrompt     = 3
	DefaultLaunchesUntilPrompt = 10
	DefaultNamespace           = "apprater.preferences"
	DefaultDBPath              = "apprater.db"
)

// Backends understood by the CLI.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Thresholds gate the prompt window.
type Thresholds struct {
	DaysUntilPrompt     int `yaml:"days_until_prompt" env:"DAYS_UNTIL_PROMPT"`
	LaunchesUntilPrompt int `yaml:"launches_until_prompt" env:"LAUNCHES_UNTIL_PROMPT"`
}

// Store describes where the prompt state lives.
type Store struct {
	Backend   string `yaml:"backend" env:"BACKEND"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
	DBPath    string `yaml:"db_path" env:"DB_PATH"`
	RedisAddr string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisDB   int    `yaml:"redis_db" env:"REDIS_DB"`
}

// Link holds the store page URI templates. %s is replaced with the app id.
type Link struct {
	MarketURI string `yaml:"market_uri" env:"MARKET_URI"`
	WebURL    string `yaml:"web_url" env:"WEB_URL"`
}

// Config is the full apprater configuration.
type Config struct {
	AppID      string     `yaml:"app_id" env:"APP_ID"`
	Thresholds Thresholds `yaml:"thresholds"`
	Store      Store      `yaml:"store"`
	Link       Link       `yaml:"link"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AppID: "com.example.app",
		Thresholds: Thresholds{
			DaysUntilPrompt:     DefaultDaysUntilPrompt,
			LaunchesUntilPrompt: DefaultLaunchesUntilPrompt,
		},
		Store: Store{
			Backend:   BackendSQLite,
			Namespace: DefaultNamespace,
			DBPath:    DefaultDBPath,
			RedisAddr: "localhost:6379",
		},
		Link: Link{
			MarketURI: "market://details?id=%s",
			WebURL:    "https://play.google.com/store/apps/details?id=%s",
		},
	}
}

// Load resolves the configuration. path may be empty, in which case no file is read.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "APPRATER_"}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the values that the policy and stores rely on.
func (c Config) Validate() error {
	if c.AppID == "" {
		return fmt.Errorf("%w: app id is required", ErrInvalid)
	}
	if c.Thresholds.DaysUntilPrompt < 0 {
		return fmt.Errorf("%w: days until prompt must be >= 0, got %d", ErrInvalid, c.Thresholds.DaysUntilPrompt)
	}
	if c.Thresholds.LaunchesUntilPrompt < 0 {
		return fmt.Errorf("%w: launches until prompt must be >= 0, got %d", ErrInvalid, c.Thresholds.LaunchesUntilPrompt)
	}
	if c.Store.Namespace == "" {
		return fmt.Errorf("%w: store namespace is required", ErrInvalid)
	}
	switch c.Store.Backend {
	case BackendSQLite:
		if c.Store.DBPath == "" {
			return fmt.Errorf("%w: sqlite backend needs a db path", ErrInvalid)
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("%w: redis backend needs an address", ErrInvalid)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalid, c.Store.Backend)
	}
	return nil
}
