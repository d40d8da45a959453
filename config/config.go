// Package config provides configuration loading and management for i18nsync.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config represents the complete i18nsync configuration
type Config struct {
	// Root is the project directory scanned for markup (default: "public")
	Root string `yaml:"root"`
	// LocalesDir is the dictionary directory name under Root
	LocalesDir string `yaml:"locales_dir"`
	// Attribute is the annotation attribute name
	Attribute string `yaml:"attribute"`
	// SourceLang is the language canonical texts are written in
	SourceLang string `yaml:"source_lang"`
	// Include selects markup documents, as doublestar globs relative to Root
	Include []string `yaml:"include"`
	// Exclude skips markup documents matched by any of these globs
	Exclude []string `yaml:"exclude"`
	// ReferenceNames are dictionary names skipped in batch mode
	ReferenceNames []string `yaml:"reference_names"`
	// Workers is the number of documents parsed concurrently
	Workers int `yaml:"workers"`

	Flags     FlagsConfig     `yaml:"flags"`
	Provider  ProviderConfig  `yaml:"provider"`
	Retry     RetryConfig     `yaml:"retry"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// FlagsConfig holds the reconciliation flags. Unset fields inherit from the
// previous layer, so a file can turn a default off.
type FlagsConfig struct {
	AutoAdd       *bool `yaml:"auto_add,omitempty"`
	AutoTranslate *bool `yaml:"auto_translate,omitempty"`
	AutoRemove    *bool `yaml:"auto_remove,omitempty"`
	SortKeys      *bool `yaml:"sort_keys,omitempty"`
}

// ProviderConfig configures the translation provider
type ProviderConfig struct {
	// Name is one of "google", "openai" or "mock"
	Name string `yaml:"name"`
	// Model is the chat model for the openai provider
	Model string `yaml:"model"`
	// BaseURL points the openai provider at a compatible endpoint
	BaseURL string `yaml:"base_url"`
	// APIKeyEnv names the environment variable holding the API key
	APIKeyEnv string `yaml:"api_key_env"`
	// Temperature for the openai provider (0 = provider default)
	Temperature float32 `yaml:"temperature"`
	// Timeout bounds each translation request
	Timeout time.Duration `yaml:"timeout"`
	// ExtraLanguages are accepted by the google provider in addition to its
	// built-in code table
	ExtraLanguages []string `yaml:"extra_languages"`
}

// RetryConfig configures retries of transient provider failures
type RetryConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
}

// RateLimitConfig throttles provider requests
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// CacheConfig configures the translation cache
type CacheConfig struct {
	// Type is one of "none", "memory" or "redis"
	Type string `yaml:"type"`
	// TTL is the entry lifetime (0 = no expiration)
	TTL time.Duration `yaml:"ttl"`
	// RedisURL is required for the redis cache
	RedisURL string `yaml:"redis_url"`
	// KeyPrefix namespaces redis keys
	KeyPrefix string `yaml:"key_prefix"`
	// File persists a memory cache between runs (empty = not persisted)
	File string `yaml:"file"`
}

// MetricsConfig configures metrics export
type MetricsConfig struct {
	// Textfile is written in the Prometheus text format after each run
	Textfile string `yaml:"textfile"`
}

func boolPtr(b bool) *bool { return &b }

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	defaults := i18nsync.DefaultFlags()
	return &Config{
		Root:           "public",
		LocalesDir:     i18nsync.DefaultLocalesDir,
		Attribute:      i18nsync.DefaultAttribute,
		SourceLang:     i18nsync.DefaultSourceLang,
		Include:        append([]string(nil), i18nsync.DefaultInclude...),
		ReferenceNames: append([]string(nil), i18nsync.DefaultReferenceNames...),
		Workers:        4,
		Flags: FlagsConfig{
			AutoAdd:       boolPtr(defaults.AutoAdd),
			AutoTranslate: boolPtr(defaults.AutoTranslate),
			AutoRemove:    boolPtr(defaults.AutoRemove),
			SortKeys:      boolPtr(defaults.SortKeys),
		},
		Provider: ProviderConfig{
			Name:      "google",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			Timeout:   30 * time.Second,
		},
		Retry: RetryConfig{
			MaxRetries: 3,
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 120,
		},
		Cache: CacheConfig{
			Type:      "memory",
			KeyPrefix: "i18nsync:",
		},
	}
}

// ReconcileFlags resolves the flag layer into i18nsync.Flags. Unset fields
// are false.
func (c *Config) ReconcileFlags() i18nsync.Flags {
	get := func(b *bool) bool { return b != nil && *b }
	return i18nsync.Flags{
		AutoAdd:       get(c.Flags.AutoAdd),
		AutoTranslate: get(c.Flags.AutoTranslate),
		AutoRemove:    get(c.Flags.AutoRemove),
		SortKeys:      get(c.Flags.SortKeys),
	}
}

// RetryPolicy returns the retry settings as i18nsync.RetryConfig.
func (c *Config) RetryPolicy() i18nsync.RetryConfig {
	return i18nsync.RetryConfig{
		MaxRetries: c.Retry.MaxRetries,
		BaseDelay:  c.Retry.BaseDelay,
		MaxDelay:   c.Retry.MaxDelay,
	}
}

// RateLimitPolicy returns the rate limit settings as i18nsync.RateLimitConfig.
func (c *Config) RateLimitPolicy() i18nsync.RateLimitConfig {
	return i18nsync.RateLimitConfig{
		RequestsPerMinute: c.RateLimit.RequestsPerMinute,
		BurstSize:         c.RateLimit.Burst,
	}
}

// APIKey returns the provider API key from the configured environment variable.
func (c *Config) APIKey() string {
	if c.Provider.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Provider.APIKeyEnv)
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.LocalesDir == "" || strings.ContainsAny(c.LocalesDir, `/\`) {
		return fmt.Errorf("locales_dir must be a single directory name, got %q", c.LocalesDir)
	}
	if c.Attribute == "" {
		return fmt.Errorf("attribute is required")
	}
	if c.SourceLang == "" {
		return fmt.Errorf("source_lang is required")
	}
	if len(c.Include) == 0 {
		return fmt.Errorf("include must list at least one pattern")
	}
	for _, pattern := range append(append([]string(nil), c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	switch c.Provider.Name {
	case "google", "mock":
	case "openai":
		if c.Provider.Model == "" {
			return fmt.Errorf("provider.model is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown provider %q (want google, openai or mock)", c.Provider.Name)
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		return fmt.Errorf("provider.temperature must be between 0 and 2")
	}

	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative")
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}

	switch c.Cache.Type {
	case "none", "memory":
	case "redis":
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for the redis cache")
		}
	default:
		return fmt.Errorf("unknown cache type %q (want none, memory or redis)", c.Cache.Type)
	}

	return nil
}

// LoadFromFile loads a configuration layer from a YAML file. Fields absent
// from the file are left zero so the layer can be merged over another.
func LoadFromFile(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	setString(&c.Root, other.Root)
	setString(&c.LocalesDir, other.LocalesDir)
	setString(&c.Attribute, other.Attribute)
	setString(&c.SourceLang, other.SourceLang)
	if len(other.Include) > 0 {
		c.Include = other.Include
	}
	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
	if len(other.ReferenceNames) > 0 {
		c.ReferenceNames = other.ReferenceNames
	}
	if other.Workers != 0 {
		c.Workers = other.Workers
	}

	// Flags
	setBool(&c.Flags.AutoAdd, other.Flags.AutoAdd)
	setBool(&c.Flags.AutoTranslate, other.Flags.AutoTranslate)
	setBool(&c.Flags.AutoRemove, other.Flags.AutoRemove)
	setBool(&c.Flags.SortKeys, other.Flags.SortKeys)

	// Provider
	setString(&c.Provider.Name, other.Provider.Name)
	setString(&c.Provider.Model, other.Provider.Model)
	setString(&c.Provider.BaseURL, other.Provider.BaseURL)
	setString(&c.Provider.APIKeyEnv, other.Provider.APIKeyEnv)
	if other.Provider.Temperature != 0 {
		c.Provider.Temperature = other.Provider.Temperature
	}
	if other.Provider.Timeout != 0 {
		c.Provider.Timeout = other.Provider.Timeout
	}
	if len(other.Provider.ExtraLanguages) > 0 {
		c.Provider.ExtraLanguages = other.Provider.ExtraLanguages
	}

	// Retry
	if other.Retry.MaxRetries != 0 {
		c.Retry.MaxRetries = other.Retry.MaxRetries
	}
	if other.Retry.BaseDelay != 0 {
		c.Retry.BaseDelay = other.Retry.BaseDelay
	}
	if other.Retry.MaxDelay != 0 {
		c.Retry.MaxDelay = other.Retry.MaxDelay
	}

	// Rate limit
	if other.RateLimit.RequestsPerMinute != 0 {
		c.RateLimit.RequestsPerMinute = other.RateLimit.RequestsPerMinute
	}
	if other.RateLimit.Burst != 0 {
		c.RateLimit.Burst = other.RateLimit.Burst
	}

	// Cache
	setString(&c.Cache.Type, other.Cache.Type)
	if other.Cache.TTL != 0 {
		c.Cache.TTL = other.Cache.TTL
	}
	setString(&c.Cache.RedisURL, other.Cache.RedisURL)
	setString(&c.Cache.KeyPrefix, other.Cache.KeyPrefix)
	setString(&c.Cache.File, other.Cache.File)

	// Metrics
	setString(&c.Metrics.Textfile, other.Metrics.Textfile)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst **bool, v *bool) {
	if v != nil {
		b := *v
		*dst = &b
	}
}
