package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/quill/pkg/formatting"
	"github.com/JaimeStill/quill/pkg/middleware"
	"github.com/JaimeStill/quill/pkg/openapi"
)

const (
	EnvAPIBasePath    = "QUILL_API_BASE_PATH"
	EnvAPIMaxBodySize = "QUILL_API_MAX_BODY_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "QUILL_CORS_ENABLED",
	Origins:          "QUILL_CORS_ORIGINS",
	AllowedMethods:   "QUILL_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "QUILL_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "QUILL_CORS_EXPOSED_HEADERS",
	AllowCredentials: "QUILL_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "QUILL_CORS_MAX_AGE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "QUILL_OPENAPI_TITLE",
	Description: "QUILL_OPENAPI_DESCRIPTION",
	ServerURL:   "QUILL_OPENAPI_SERVER_URL",
}

// APIConfig holds API routing, body limits, CORS, and OpenAPI settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize formatting.Size       `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment overrides, and validation for the
// API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != 0 {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == 0 {
		c.MaxBodySize = 1 << 20
	}
}

func (c *APIConfig) loadEnv() error {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		size, err := formatting.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAPIMaxBodySize, err)
		}
		c.MaxBodySize = formatting.Size(size)
	}
	return nil
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 || len(c.BasePath) == 1 {
		return fmt.Errorf("invalid base_path: %q must be a single path segment", c.BasePath)
	}
	if c.MaxBodySize < 0 {
		return fmt.Errorf("invalid max_body_size: %d", c.MaxBodySize)
	}
	return nil
}
