package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "500ms" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	td, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(td)
	return nil
}

// Duration returns the wrapped time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Source struct {
		BaseURL      string   `yaml:"base_url"`
		MarketSuffix string   `yaml:"market_suffix"`
		Timeout      Duration `yaml:"timeout"`
	} `yaml:"source"`
	Run struct {
		CutoffDate     string   `yaml:"cutoff_date"`
		PacingDelay    Duration `yaml:"pacing_delay"`
		TriggerTimeout Duration `yaml:"trigger_timeout"`
	} `yaml:"run"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level     string `yaml:"level"`
		Dir       string `yaml:"dir"`
		MaxSizeMB int    `yaml:"max_size_mb"`
		MaxAge    int    `yaml:"max_age_days"`
	} `yaml:"log"`
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
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SOURCE_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("MARKET_SUFFIX"); v != "" {
		cfg.Source.MarketSuffix = v
	}
	if v := os.Getenv("CUTOFF_DATE"); v != "" {
		cfg.Run.CutoffDate = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PACING_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Run.PacingDelay = Duration(time.Duration(ms) * time.Millisecond)
		}
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/market_data.db"
	}
	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = "https://stooq.com"
	}
	if cfg.Source.MarketSuffix == "" {
		cfg.Source.MarketSuffix = ".US"
	}
	if cfg.Source.Timeout == 0 {
		cfg.Source.Timeout = Duration(30 * time.Second)
	}
	if cfg.Run.CutoffDate == "" {
		cfg.Run.CutoffDate = "2017-01-01"
	}
	if cfg.Run.PacingDelay == 0 {
		cfg.Run.PacingDelay = Duration(500 * time.Millisecond)
	}
	if cfg.Run.TriggerTimeout == 0 {
		cfg.Run.TriggerTimeout = Duration(5 * time.Minute)
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 18 * * 1-5"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = "logs"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxAge == 0 {
		cfg.Log.MaxAge = 30
	}

	return cfg, nil
}

// CutoffDate parses the configured cutoff into a time.Time.
func (c *Config) CutoffDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Run.CutoffDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cutoff_date %q: %w", c.Run.CutoffDate, err)
	}
	return t, nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	if _, err := c.CutoffDate(); err != nil {
		return err
	}
	if c.Run.PacingDelay < 0 {
		return fmt.Errorf("run.pacing_delay must not be negative")
	}
	return nil
}
