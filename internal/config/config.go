// Package config loads teamforge configuration from an optional YAML file
// with environment-variable overrides. Values are read once at startup.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all teamforge configuration.
type Config struct {
	Agent    AgentConfig    `yaml:"agent"`
	UI       UIConfig       `yaml:"ui"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AgentConfig routes the remote agent call.
type AgentConfig struct {
	ID       string `yaml:"id"`
	AliasID  string `yaml:"alias_id"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // overrides the region-derived URL
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

// UIConfig holds the interactive surface labels.
type UIConfig struct {
	Title string `yaml:"title"`
	Icon  string `yaml:"icon"`
}

// DatabaseConfig locates the player database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	File        string `yaml:"file"`  // log file; the TTY belongs to the TUI
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			AliasID: "TSTALIASID",
			Region:  "us-west-2",
			Timeout: "120s",
		},
		UI: UIConfig{
			Title: "VALORANT Team Builder",
			Icon:  "🎮",
		},
		Database: DatabaseConfig{
			Path: "valorant_players.db",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  ".teamforge/forge.log",
		},
	}
}

// Load reads the config file at path (skipped when path is empty or the
// file does not exist), applies environment overrides, and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variables over file values. The
// names follow the original deployment surface.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BEDROCK_AGENT_ID"); v != "" {
		c.Agent.ID = v
	}
	if v := os.Getenv("BEDROCK_AGENT_ALIAS_ID"); v != "" {
		c.Agent.AliasID = v
	}
	if v := os.Getenv("BEDROCK_REGION"); v != "" {
		c.Agent.Region = v
	}
	if v := os.Getenv("BEDROCK_RUNTIME_ENDPOINT"); v != "" {
		c.Agent.Endpoint = v
	}
	if v := os.Getenv("BEDROCK_API_KEY"); v != "" {
		c.Agent.APIKey = v
	}
	if v := os.Getenv("BEDROCK_AGENT_TEST_UI_TITLE"); v != "" {
		c.UI.Title = v
	}
	if v := os.Getenv("BEDROCK_AGENT_TEST_UI_ICON"); v != "" {
		c.UI.Icon = v
	}
	if v := os.Getenv("TEAMFORGE_DB"); v != "" {
		c.Database.Path = v
	}
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Agent.Timeout); c.Agent.Timeout != "" && err != nil {
		return fmt.Errorf("invalid agent timeout %q: %w", c.Agent.Timeout, err)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path not configured")
	}
	return nil
}

// RuntimeEndpoint returns the configured endpoint, or the region-derived
// default when none is set.
func (c *AgentConfig) RuntimeEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("https://bedrock-agent-runtime.%s.amazonaws.com", c.Region)
}

// TimeoutDuration parses the timeout, falling back to two minutes.
func (c *AgentConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}
