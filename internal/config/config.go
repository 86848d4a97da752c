// Package config provides configuration management for the recsweep application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ZoomConfig holds Zoom API authentication and connection settings
type ZoomConfig struct {
	AccountID    string `yaml:"account_id" json:"account_id"`
	ClientID     string `yaml:"client_id" json:"client_id"`
	ClientSecret string `yaml:"client_secret" json:"client_secret"`
	BaseURL      string `yaml:"base_url" json:"base_url"`
	TokenURL     string `yaml:"token_url" json:"token_url"`
}

// FetchConfig holds pagination and fan-out settings. The page caps and the
// fan-out concurrency are deliberately configuration, not constants: the
// defaults are hand-picked and carry no documented tie to upstream rate
// limits.
type FetchConfig struct {
	PageSize        int `yaml:"page_size" json:"page_size"`
	PhoneMaxPages   int `yaml:"phone_max_pages" json:"phone_max_pages"`
	CCMaxPages      int `yaml:"cc_max_pages" json:"cc_max_pages"`
	UserConcurrency int `yaml:"user_concurrency" json:"user_concurrency"`
	RetryAttempts   int `yaml:"retry_attempts" json:"retry_attempts"`
	TimeoutSeconds  int `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// TimeoutDuration returns the request timeout as a time.Duration
func (f FetchConfig) TimeoutDuration() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	Console    bool   `yaml:"console" json:"console"`
	JSONFormat bool   `yaml:"json_format" json:"json_format"`
}

// ActiveUsersConfig holds the optional user allowlist settings. When a file
// is configured, only listed users are fanned out during meetings searches.
type ActiveUsersConfig struct {
	File         string `yaml:"file" json:"file"`
	CheckEnabled bool   `yaml:"check_enabled" json:"check_enabled"`
	WatchFile    bool   `yaml:"watch_file" json:"watch_file"`
}

// DemoConfig holds offline demo mode settings. Demo mode bypasses the
// network entirely and serves synthetic records.
type DemoConfig struct {
	Enabled bool  `yaml:"enabled" json:"enabled"`
	Seed    int64 `yaml:"seed" json:"seed"`
}

// Config represents the complete application configuration
type Config struct {
	Zoom        ZoomConfig        `yaml:"zoom" json:"zoom"`
	Fetch       FetchConfig       `yaml:"fetch" json:"fetch"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
	ActiveUsers ActiveUsersConfig `yaml:"active_users" json:"active_users"`
	Demo        DemoConfig        `yaml:"demo" json:"demo"`
}

// MissingConfigurationError indicates a required account-level setting is
// absent, e.g. no account identifier for account-scoped queries.
type MissingConfigurationError struct {
	Field string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Field)
}

// LoadConfig loads configuration from a YAML file with defaults and environment variable overrides
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := config.loadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config from file: %w", err)
	}

	config.setDefaults()
	config.loadFromEnvironment()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file
func (c *Config) loadFromFile(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

// setDefaults applies default values for missing configuration
func (c *Config) setDefaults() {
	if c.Zoom.BaseURL == "" {
		c.Zoom.BaseURL = "https://api.zoom.us/v2"
	}
	if c.Zoom.TokenURL == "" {
		c.Zoom.TokenURL = "https://zoom.us/oauth/token"
	}

	if c.Fetch.PageSize == 0 {
		c.Fetch.PageSize = 300
	}
	if c.Fetch.PhoneMaxPages == 0 {
		c.Fetch.PhoneMaxPages = 20
	}
	if c.Fetch.CCMaxPages == 0 {
		c.Fetch.CCMaxPages = 50
	}
	if c.Fetch.UserConcurrency == 0 {
		c.Fetch.UserConcurrency = 4
	}
	if c.Fetch.RetryAttempts == 0 {
		c.Fetch.RetryAttempts = 3
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 30
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	// Console defaults to true, override in YAML if false is desired
	c.Logging.Console = true
}

// loadFromEnvironment overrides configuration with environment variables
func (c *Config) loadFromEnvironment() {
	if val := os.Getenv("ZOOM_ACCOUNT_ID"); val != "" {
		c.Zoom.AccountID = val
	}
	if val := os.Getenv("ZOOM_CLIENT_ID"); val != "" {
		c.Zoom.ClientID = val
	}
	if val := os.Getenv("ZOOM_CLIENT_SECRET"); val != "" {
		c.Zoom.ClientSecret = val
	}
	if val := os.Getenv("ZOOM_BASE_URL"); val != "" {
		c.Zoom.BaseURL = val
	}

	if val := os.Getenv("RECSWEEP_PAGE_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Fetch.PageSize = n
		}
	}
	if val := os.Getenv("RECSWEEP_DEMO"); val != "" {
		c.Demo.Enabled = val == "1" || strings.EqualFold(val, "true")
	}
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	// Demo mode never touches the network, so credentials are optional there
	if !c.Demo.Enabled {
		if c.Zoom.AccountID == "" {
			return &MissingConfigurationError{Field: "zoom.account_id"}
		}
		if c.Zoom.ClientID == "" {
			return &MissingConfigurationError{Field: "zoom.client_id"}
		}
		if c.Zoom.ClientSecret == "" {
			return &MissingConfigurationError{Field: "zoom.client_secret"}
		}
	}

	if c.Fetch.PageSize < 1 || c.Fetch.PageSize > 300 {
		return fmt.Errorf("fetch.page_size must be between 1 and 300")
	}
	if c.Fetch.PhoneMaxPages < 1 {
		return fmt.Errorf("fetch.phone_max_pages must be >= 1")
	}
	if c.Fetch.CCMaxPages < 1 {
		return fmt.Errorf("fetch.cc_max_pages must be >= 1")
	}
	if c.Fetch.UserConcurrency < 1 {
		return fmt.Errorf("fetch.user_concurrency must be >= 1")
	}
	if c.Fetch.RetryAttempts < 0 {
		return fmt.Errorf("fetch.retry_attempts must be >= 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be greater than 0")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	return nil
}
