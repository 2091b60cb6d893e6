package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/quill/pkg/formatting"
)

const (
	EnvCacheEnabled = "QUILL_CACHE_ENABLED"
	EnvCacheMaxCost = "QUILL_CACHE_MAX_COST"
	EnvCacheTTL     = "QUILL_CACHE_TTL"
)

// CacheConfig sizes the compile result cache. MaxCost bounds the total
// bytes of cached results.
type CacheConfig struct {
	Enabled *bool           `toml:"enabled"`
	MaxCost formatting.Size `toml:"max_cost"`
	TTL     string          `toml:"ttl"`
}

// IsEnabled reports whether caching is on. It defaults to true.
func (c *CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TTLDuration returns TTL as a time.Duration.
func (c *CacheConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CacheConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites set fields from overlay.
func (c *CacheConfig) Merge(overlay *CacheConfig) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.MaxCost != 0 {
		c.MaxCost = overlay.MaxCost
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
}

func (c *CacheConfig) loadDefaults() {
	if c.MaxCost == 0 {
		c.MaxCost = 64 << 20
	}
	if c.TTL == "" {
		c.TTL = "10m"
	}
}

func (c *CacheConfig) loadEnv() error {
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = &enabled
		}
	}
	if v := os.Getenv(EnvCacheMaxCost); v != "" {
		size, err := formatting.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheMaxCost, err)
		}
		c.MaxCost = formatting.Size(size)
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		c.TTL = v
	}
	return nil
}

func (c *CacheConfig) validate() error {
	if c.MaxCost <= 0 {
		return fmt.Errorf("invalid max_cost: %d", c.MaxCost)
	}
	if _, err := time.ParseDuration(c.TTL); err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	return nil
}
