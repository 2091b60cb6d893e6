package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/JaimeStill/quill/pkg/bus"
)

const (
	EnvBusURL        = "QUILL_BUS_URL"
	EnvBusName       = "QUILL_BUS_NAME"
	EnvBusPrefix     = "QUILL_BUS_PREFIX"
	EnvBusQueueGroup = "QUILL_BUS_QUEUE_GROUP"
	EnvBusTimeout    = "QUILL_BUS_TIMEOUT"
)

// BusConfig configures the NATS responders. The bus is disabled while URL
// is empty.
type BusConfig struct {
	URL        string `toml:"url"`
	Name       string `toml:"name"`
	Prefix     string `toml:"prefix"`
	QueueGroup string `toml:"queue_group"`
	Timeout    string `toml:"timeout"`
}

// Enabled reports whether a NATS URL is configured.
func (c *BusConfig) Enabled() bool {
	return c.URL != ""
}

// Options converts the config for bus.Connect.
func (c *BusConfig) Options() bus.Config {
	timeout, _ := time.ParseDuration(c.Timeout)
	return bus.Config{
		URL:        c.URL,
		Name:       c.Name,
		QueueGroup: c.QueueGroup,
		Timeout:    timeout,
	}
}

// Subject joins the subject prefix and an operation name.
func (c *BusConfig) Subject(op string) string {
	return c.Prefix + "." + op
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *BusConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *BusConfig) Merge(overlay *BusConfig) {
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
	if overlay.QueueGroup != "" {
		c.QueueGroup = overlay.QueueGroup
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *BusConfig) loadDefaults() {
	if c.Name == "" {
		c.Name = "quill"
	}
	if c.Prefix == "" {
		c.Prefix = "quill.compile"
	}
	if c.QueueGroup == "" {
		c.QueueGroup = "quill"
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
}

func (c *BusConfig) loadEnv() {
	if v := os.Getenv(EnvBusURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvBusName); v != "" {
		c.Name = v
	}
	if v := os.Getenv(EnvBusPrefix); v != "" {
		c.Prefix = v
	}
	if v := os.Getenv(EnvBusQueueGroup); v != "" {
		c.QueueGroup = v
	}
	if v := os.Getenv(EnvBusTimeout); v != "" {
		c.Timeout = v
	}
	c.Prefix = strings.Trim(c.Prefix, ".")
}

func (c *BusConfig) validate() error {
	if c.Prefix == "" || strings.ContainsAny(c.Prefix, " *>") {
		return fmt.Errorf("invalid prefix: %q", c.Prefix)
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout: %q", c.Timeout)
	}
	return nil
}
