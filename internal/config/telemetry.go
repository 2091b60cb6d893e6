package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/quill/pkg/telemetry"
)

const (
	EnvTelemetryEnabled     = "QUILL_TELEMETRY_ENABLED"
	EnvTelemetryEndpoint    = "QUILL_TELEMETRY_ENDPOINT"
	EnvTelemetryInsecure    = "QUILL_TELEMETRY_INSECURE"
	EnvTelemetryServiceName = "QUILL_TELEMETRY_SERVICE_NAME"
	EnvTelemetryInterval    = "QUILL_TELEMETRY_INTERVAL"
)

// TelemetryConfig selects the OTLP collector. Telemetry is off unless
// enabled.
type TelemetryConfig struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	Insecure    bool   `toml:"insecure"`
	ServiceName string `toml:"service_name"`
	Interval    string `toml:"interval"`
}

// Options converts the config for telemetry.Setup.
func (c *TelemetryConfig) Options(version string) telemetry.Config {
	interval, _ := time.ParseDuration(c.Interval)
	return telemetry.Config{
		Enabled:     c.Enabled,
		Endpoint:    c.Endpoint,
		Insecure:    c.Insecure,
		ServiceName: c.ServiceName,
		Version:     version,
		Interval:    interval,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *TelemetryConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Booleans always apply.
func (c *TelemetryConfig) Merge(overlay *TelemetryConfig) {
	c.Enabled = overlay.Enabled
	c.Insecure = overlay.Insecure
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.ServiceName != "" {
		c.ServiceName = overlay.ServiceName
	}
	if overlay.Interval != "" {
		c.Interval = overlay.Interval
	}
}

func (c *TelemetryConfig) loadDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4317"
	}
	if c.ServiceName == "" {
		c.ServiceName = "quill"
	}
	if c.Interval == "" {
		c.Interval = "30s"
	}
}

func (c *TelemetryConfig) loadEnv() {
	if v := os.Getenv(EnvTelemetryEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := os.Getenv(EnvTelemetryEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvTelemetryInsecure); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Insecure = b
		}
	}
	if v := os.Getenv(EnvTelemetryServiceName); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv(EnvTelemetryInterval); v != "" {
		c.Interval = v
	}
}

func (c *TelemetryConfig) validate() error {
	if d, err := time.ParseDuration(c.Interval); err != nil || d <= 0 {
		return fmt.Errorf("invalid interval: %q", c.Interval)
	}
	return nil
}
