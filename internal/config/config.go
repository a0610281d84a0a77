// Package config manages the client configuration file at
// ~/.healthpulse/config.yaml. The file is optional: a missing file means
// defaults, and it is created with defaults on first save.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the persisted client configuration. The session lives in its own
// file; only non-credential settings belong here.
type Config struct {
	// APIURL overrides the backend base URL. Empty means the built-in
	// default. The HEALTHPULSE_API environment variable outranks both.
	APIURL string `yaml:"api_url,omitempty" mapstructure:"api_url"`

	// HistoryDays is how many days of scores the history command and the
	// dashboard trend show by default.
	HistoryDays int `yaml:"history_days" mapstructure:"history_days"`

	// Verbose turns on request logging without passing --verbose each run.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultHistoryDays backs the trend display when the config doesn't say.
const DefaultHistoryDays = 14

var (
	configPath string
	configDir  string
)

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
	configDir = filepath.Join(home, ".healthpulse")
	configPath = filepath.Join(configDir, "config.yaml")
}

// Path returns the path to the config file.
func Path() string {
	return configPath
}

// Dir returns the config directory.
func Dir() string {
	return configDir
}

// Load reads the configuration, returning defaults when no file exists.
func Load() (*Config, error) {
	cfg := &Config{HistoryDays: DefaultHistoryDays}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = DefaultHistoryDays
	}
	return cfg, nil
}

// Save writes the configuration to file.
func Save(cfg *Config) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ResolveAPIURL picks the backend base URL: environment, then config file,
// then the built-in default.
func (c *Config) ResolveAPIURL(fallback string) string {
	if env := os.Getenv("HEALTHPULSE_API"); env != "" {
		return strings.TrimSuffix(env, "/")
	}
	if c != nil && c.APIURL != "" {
		return strings.TrimSuffix(c.APIURL, "/")
	}
	return strings.TrimSuffix(fallback, "/")
}
