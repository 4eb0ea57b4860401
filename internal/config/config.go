package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Data     DataConfig   `yaml:"data"`
	Server   ServerConfig `yaml:"server"`
	UI       UIConfig     `yaml:"ui"`
	LogLevel string       `yaml:"log_level"`
	LogFile  string       `yaml:"log_file"`
}

// DataConfig describes where the pre-computed JSON documents live.
type DataConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Retry   RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type UIConfig struct {
	MaxHotTopics int `yaml:"max_hot_topics"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Data.BaseURL == "" {
		c.Data.BaseURL = "https://onearthlouis.github.io/stock-radar/data"
	}
	if c.Data.Timeout == 0 {
		c.Data.Timeout = 20 * time.Second
	}
	if c.Data.Retry.MaxAttempts == 0 {
		c.Data.Retry.MaxAttempts = 3
	}
	if c.Data.Retry.InitialBackoff == 0 {
		c.Data.Retry.InitialBackoff = 500 * time.Millisecond
	}
	if c.Data.Retry.MaxBackoff == 0 {
		c.Data.Retry.MaxBackoff = 10 * time.Second
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RefreshInterval == 0 {
		c.Server.RefreshInterval = 5 * time.Minute
	}
	if c.UI.MaxHotTopics == 0 {
		c.UI.MaxHotTopics = 24
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
