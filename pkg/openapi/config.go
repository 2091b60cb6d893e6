package openapi

import "os"

// Config holds OpenAPI metadata for spec generation.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	ServerURL   string `toml:"server_url"`
}

// ConfigEnv maps config fields to environment variable names for override injection.
type ConfigEnv struct {
	Title       string
	Description string
	ServerURL   string
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.ServerURL != "" {
		c.ServerURL = overlay.ServerURL
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Quill API"
	}
	if c.Description == "" {
		c.Description = "Compiles free-text instructions and industry presets into sectioned system prompts."
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	for _, f := range []struct {
		key string
		dst *string
	}{
		{env.Title, &c.Title},
		{env.Description, &c.Description},
		{env.ServerURL, &c.ServerURL},
	} {
		if f.key == "" {
			continue
		}
		if v := os.Getenv(f.key); v != "" {
			*f.dst = v
		}
	}
}
