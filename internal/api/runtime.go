package api

import (
	"github.com/JaimeStill/quill/internal/compiler"
	"github.com/JaimeStill/quill/internal/config"
	"github.com/JaimeStill/quill/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Compiler    compiler.Config
	MaxBodySize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Cache:     infra.Cache,
			Metrics:   infra.Metrics,
			Bus:       infra.Bus,
		},
		Compiler: compiler.Config{
			BatchLimit:  cfg.Compiler.BatchLimit,
			Concurrency: cfg.Compiler.Concurrency,
		},
		MaxBodySize: cfg.API.MaxBodySize.Bytes(),
	}
}
