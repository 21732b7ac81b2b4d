// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/portfolio-drafter/internal/llm"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey         = "GEMINI_API_KEY"
	EnvModel          = "GEMINI_MODEL"
	EnvEndpoint       = "GEMINI_ENDPOINT"
	EnvTransport      = "DRAFT_TRANSPORT"
	EnvAttemptTimeout = "DRAFT_ATTEMPT_TIMEOUT"
	EnvProfilePath    = "PROFILE_PATH"
	EnvPort           = "PORT"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults, environment variables
// or CLI flags.
type Config struct {
	// Generation
	APIKey           string `json:"api_key,omitempty" yaml:"api_key,omitempty"`                       // Gemini API key
	Model            string `json:"model,omitempty" yaml:"model,omitempty"`                           // Model used for drafting
	Endpoint         string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`                     // Base URL of the generation API
	Transport        string `json:"transport,omitempty" yaml:"transport,omitempty"`                   // "rest" or "sdk"
	AttemptTimeoutMS int    `json:"attempt_timeout_ms,omitempty" yaml:"attempt_timeout_ms,omitempty"` // Timeout for a single request

	// Data
	ProfilePath string `json:"profile_path,omitempty" yaml:"profile_path,omitempty"` // Portfolio JSON; empty uses the built-in profile

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print attempt-level progress
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Transport:        string(llm.TransportREST),
		AttemptTimeoutMS: 10000,
		Port:             DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON file, or YAML when the file
// ends in .yaml or .yml. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. The API key is
// not checked here since commands that never call the API do not need one.
func (c *Config) Validate() error {
	switch llm.Transport(c.Transport) {
	case "", llm.TransportREST, llm.TransportSDK:
	default:
		return fmt.Errorf("config error: 'transport' must be %q or %q, got %q", llm.TransportREST, llm.TransportSDK, c.Transport)
	}

	if c.AttemptTimeoutMS < 0 {
		return fmt.Errorf("config error: 'attempt_timeout_ms' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.ProfilePath != "" {
		if _, err := os.Stat(c.ProfilePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.ProfilePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Endpoint == "" {
		result.Endpoint = defaults.Endpoint
	}
	if result.Transport == "" {
		result.Transport = defaults.Transport
	}
	if result.ProfilePath == "" {
		result.ProfilePath = defaults.ProfilePath
	}

	if result.AttemptTimeoutMS == 0 {
		result.AttemptTimeoutMS = defaults.AttemptTimeoutMS
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bools cannot distinguish unset from false, so they are not merged

	return result
}

// ApplyEnv overrides fields with any of the recognised environment variables
// that are set and non-empty.
func (c *Config) ApplyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(EnvAPIKey, &c.APIKey)
	setString(EnvModel, &c.Model)
	setString(EnvEndpoint, &c.Endpoint)
	setString(EnvTransport, &c.Transport)
	setString(EnvProfilePath, &c.ProfilePath)

	if v := os.Getenv(EnvAttemptTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAttemptTimeout, v, err)
		}
		c.AttemptTimeoutMS = int(d.Milliseconds())
	}

	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Port = port
	}

	return nil
}

// AttemptTimeout returns the per-request timeout as a duration.
func (c *Config) AttemptTimeout() time.Duration {
	return time.Duration(c.AttemptTimeoutMS) * time.Millisecond
}

// LLMConfig builds the generation client configuration. A configured model
// replaces the standard tier, which is the tier drafts are generated with.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Transport != "" {
		cfg.Transport = llm.Transport(c.Transport)
	}
	if c.Endpoint != "" {
		cfg.Endpoint = c.Endpoint
	}
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	return cfg
}
