package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for a dashboard generation run.
// It is constructed once at process start and passed into each component,
// so nothing reads the environment after Load returns.
type Config struct {
	Token         string
	Org           string
	APIBaseURL    string
	OutputDir     string
	TZOffsetHours int
	LogLevel      string
}

// NewConfig creates a new Config instance
func NewConfig() *Config {
	return &Config{}
}

// Load loads configuration from environment variables
func (c *Config) Load() error {
	viper.AutomaticEnv()

	// The token may live under either name; the first one present wins.
	c.Token = viper.GetString("GH_TOKEN")
	if c.Token == "" {
		c.Token = viper.GetString("GITHUB_TOKEN")
	}
	if c.Token == "" {
		return fmt.Errorf("GH_TOKEN or GITHUB_TOKEN is required")
	}

	c.Org = viper.GetString("ORG_NAME")
	if c.Org == "" {
		c.Org = "algojj"
	}

	c.APIBaseURL = viper.GetString("API_BASE_URL")
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://api.github.com"
	}

	c.OutputDir = viper.GetString("OUTPUT_DIR")
	if c.OutputDir == "" {
		c.OutputDir = "/tmp/dashboard"
	}

	// Fixed display timezone. Defaults to Argentina (UTC-3).
	if viper.IsSet("TZ_OFFSET_HOURS") {
		c.TZOffsetHours = viper.GetInt("TZ_OFFSET_HOURS")
	} else {
		c.TZOffsetHours = -3
	}

	c.LogLevel = viper.GetString("LOG_LEVEL")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	return nil
}
