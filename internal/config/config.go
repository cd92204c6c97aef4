package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Config defines configuration for the people CLI.
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	Token     string        `yaml:"token"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	LogLevel  string        `yaml:"log_level"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		BaseURL:  "http://localhost:3000/people/",
		LogLevel: "warn",
	}
}

// yamlConfig is used for YAML unmarshaling with a string timeout.
type yamlConfig struct {
	BaseURL   string  `yaml:"base_url"`
	Token     string  `yaml:"token"`
	Timeout   string  `yaml:"timeout"`
	RateLimit float64 `yaml:"rate_limit"`
	LogLevel  string  `yaml:"log_level"`
}

// LoadFromFile loads configuration from a YAML file on top of Default().
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.UnmarshalStrict(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.BaseURL != "" {
		cfg.BaseURL = yc.BaseURL
	}
	if yc.Token != "" {
		cfg.Token = yc.Token
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if yc.RateLimit != 0 {
		cfg.RateLimit = yc.RateLimit
	}
	if yc.LogLevel != "" {
		cfg.LogLevel = yc.LogLevel
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the PEOPLE_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("PEOPLE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("PEOPLE_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("PEOPLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse PEOPLE_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("PEOPLE_RATE_LIMIT"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse PEOPLE_RATE_LIMIT: %w", err)
		}
		c.RateLimit = r
	}
	if v := os.Getenv("PEOPLE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: base URL must be http or https, got %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		return errors.New("config: base URL must end with a slash so ids can be appended")
	}
	if c.Timeout < 0 {
		return errors.New("config: timeout must not be negative")
	}
	if c.RateLimit < 0 {
		return errors.New("config: rate limit must not be negative")
	}
	return nil
}
