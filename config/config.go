// Package config holds the process configuration: which state store backend
// to use, how to reach it, and how the MCP server is exposed. Loaded and
// validated once at startup, never per call.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/go-playground/validator/v10"

	"github.com/dedalus-labs/viz-mcp-example/chart"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Chart  ChartConfig  `json:"chart" yaml:"chart"`
	Server ServerConfig `json:"server" yaml:"server"`
}

// StoreConfig selects and configures the state store backend.
type StoreConfig struct {
	// Backend is one of memory, redis, badger, webhook.
	Backend string `json:"backend" yaml:"backend" validate:"required,oneof=memory redis badger webhook"`
	// Scope is the key under which the dataset is stored.
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`
	// Prefix namespaces all backend keys.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	// RedisURL is a redis connection string, e.g. redis://localhost:6379/0.
	RedisURL string `json:"redis_url,omitempty" yaml:"redis_url,omitempty" validate:"required_if=Backend redis"`
	// BadgerDir is the data directory for the embedded backend.
	BadgerDir string `json:"badger_dir,omitempty" yaml:"badger_dir,omitempty" validate:"required_if=Backend badger"`
	// WebhookURL is the base endpoint of the proxy backend.
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"required_if=Backend webhook,omitempty,url"`
	// WebhookToken is the bearer credential for the proxy backend.
	WebhookToken string `json:"webhook_token,omitempty" yaml:"webhook_token,omitempty"`
	// MaxSamples caps the dataset size; 0 means unlimited.
	MaxSamples int `json:"max_samples,omitempty" yaml:"max_samples,omitempty" validate:"gte=0"`
	Retry      RetryConfig `json:"retry" yaml:"retry"`
}

// RetryConfig enables the wrapping retry store. Zero MaxRetries disables it.
type RetryConfig struct {
	MaxRetries      uint64        `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	InitialInterval time.Duration `json:"initial_interval,omitempty" yaml:"initial_interval,omitempty"`
}

type ChartConfig struct {
	Width  int `json:"width,omitempty" yaml:"width,omitempty" validate:"gte=0"`
	Height int `json:"height,omitempty" yaml:"height,omitempty" validate:"gte=0"`
}

type ServerConfig struct {
	// Mode is stdio or sse.
	Mode string `json:"mode" yaml:"mode" validate:"required,oneof=stdio sse"`
	// ListenAddr is the bind address for sse mode.
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty" validate:"required_if=Mode sse"`
}

// Load reads the config file (YAML or JSON, with ${ENV} expansion), applies
// environment fallbacks and defaults, and validates the result. An empty
// file path yields the default configuration.
func Load(file string) (*Config, error) {
	cfg := new(Config)
	if file != "" {
		if err := configloader.UnmarshalAndExpand(file, cfg); err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
	}

	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Store.RedisURL == "" {
		c.Store.RedisURL = os.Getenv("REDIS_URL")
	}
	if c.Store.WebhookToken == "" {
		c.Store.WebhookToken = os.Getenv("VIZ_STORE_TOKEN")
	}
	if c.Store.Backend == "" {
		if c.Store.RedisURL != "" {
			c.Store.Backend = "redis"
		} else {
			c.Store.Backend = "memory"
		}
	}
	if c.Store.Scope == "" {
		c.Store.Scope = vizmodel.DefaultScope
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = chart.DefaultWidth
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = chart.DefaultHeight
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "stdio"
	}
}
