// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cloudguide/core/types"
	"cloudguide/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing" yaml:"pricing"`

	// Storage contains saved analysis storage configuration
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address is the listen address
	Address string `json:"address" yaml:"address"`

	ReadTimeoutSeconds  int `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`

	// RateLimit is requests per second per client; zero disables limiting
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// Burst is the token bucket size per client
	Burst int `json:"burst" yaml:"burst"`
}

// ReadTimeout returns the read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// RatesFile is an optional HCL or JSON rate file; empty uses built-in rates
	RatesFile string `json:"rates_file" yaml:"rates_file"`

	// DefaultCurrency labels monetary output
	DefaultCurrency types.Currency `json:"default_currency" yaml:"default_currency"`

	// CacheTTLSeconds is how long a loaded rate file is reused; zero caches forever
	CacheTTLSeconds int `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
}

// CacheTTL returns the rate cache TTL as a duration
func (p PricingConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLSeconds) * time.Second
}

// StorageConfig contains saved analysis storage settings
type StorageConfig struct {
	// Backend is file, memory or postgres
	Backend string `json:"backend" yaml:"backend"`

	// Path is the file backend directory
	Path string `json:"path" yaml:"path"`

	// DSN is the postgres connection string
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// NoColor disables ANSI colors in cli output
	NoColor bool `json:"no_color" yaml:"no_color"`
}

// Environment variables that override file settings
const (
	EnvAddr        = "CLOUDGUIDE_ADDR"
	EnvRatesFile   = "CLOUDGUIDE_RATES_FILE"
	EnvStoragePath = "CLOUDGUIDE_STORAGE_PATH"
	EnvStorageDSN  = "CLOUDGUIDE_STORAGE_DSN"
	EnvLogLevel    = "CLOUDGUIDE_LOG_LEVEL"
)

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".cloudguide")

	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Address:             ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
			RateLimit:           20,
			Burst:               40,
		},
		Pricing: PricingConfig{
			DefaultCurrency: types.CurrencyUSD,
			CacheTTLSeconds: 300,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    filepath.Join(dataDir, "analyses"),
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a JSON or YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, err
		default:
			if err := decode(path, data, config); err != nil {
				return nil, err
			}
		}
	}

	config.ApplyEnv(os.LookupEnv)
	return config, nil
}

func decode(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return json.Unmarshal(data, config)
	}
}

// ApplyEnv overrides settings from the environment
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Address = v
	}
	if v, ok := lookup(EnvRatesFile); ok {
		c.Pricing.RatesFile = v
	}
	if v, ok := lookup(EnvStoragePath); ok && v != "" {
		c.Storage.Path = v
	}
	if v, ok := lookup(EnvStorageDSN); ok && v != "" {
		c.Storage.DSN = v
		c.Storage.Backend = "postgres"
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
