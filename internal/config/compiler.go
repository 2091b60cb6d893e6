package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvCompilerBatchLimit  = "QUILL_COMPILER_BATCH_LIMIT"
	EnvCompilerConcurrency = "QUILL_COMPILER_CONCURRENCY"
)

// CompilerConfig bounds batch compilation.
type CompilerConfig struct {
	BatchLimit  int `toml:"batch_limit"`
	Concurrency int `toml:"concurrency"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CompilerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CompilerConfig) Merge(overlay *CompilerConfig) {
	if overlay.BatchLimit != 0 {
		c.BatchLimit = overlay.BatchLimit
	}
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
}

func (c *CompilerConfig) loadDefaults() {
	if c.BatchLimit == 0 {
		c.BatchLimit = 50
	}
	if c.Concurrency == 0 {
		c.Concurrency = 8
	}
}

func (c *CompilerConfig) loadEnv() {
	if v := os.Getenv(EnvCompilerBatchLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchLimit = n
		}
	}
	if v := os.Getenv(EnvCompilerConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
}

func (c *CompilerConfig) validate() error {
	if c.BatchLimit < 1 {
		return fmt.Errorf("invalid batch_limit: %d", c.BatchLimit)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	return nil
}
