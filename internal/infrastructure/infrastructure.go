// Package infrastructure assembles the shared systems every quill domain
// needs: logging, lifecycle, the compile cache, telemetry, and the optional
// NATS bus.
package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/quill/internal/config"
	"github.com/JaimeStill/quill/pkg/bus"
	"github.com/JaimeStill/quill/pkg/cache"
	"github.com/JaimeStill/quill/pkg/lifecycle"
	"github.com/JaimeStill/quill/pkg/telemetry"
)

// Infrastructure holds the core systems required by all domain modules.
// Cache is nil when caching is disabled and Bus is nil when no NATS URL is
// configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Cache     *cache.Cache
	Metrics   *telemetry.Metrics
	Bus       *bus.Bus

	shutdownTelemetry telemetry.ShutdownFunc
}

// NewLogger builds the root logger for the configured level and format.
func NewLogger(cfg *config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// New creates an Infrastructure from the application configuration.
// Systems are created but hooks are not registered until Start.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := NewLogger(&cfg.Logging, os.Stderr)

	shutdown, err := telemetry.Setup(context.Background(), cfg.Telemetry.Options(cfg.Version))
	if err != nil {
		return nil, fmt.Errorf("telemetry init failed: %w", err)
	}

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		shutdown(context.Background())
		return nil, fmt.Errorf("metrics init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle:         lifecycle.New(),
		Logger:            logger,
		Metrics:           metrics,
		shutdownTelemetry: shutdown,
	}

	if cfg.Cache.IsEnabled() {
		c, err := cache.New(cfg.Cache.MaxCost.Bytes(), cfg.Cache.TTLDuration())
		if err != nil {
			shutdown(context.Background())
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		infra.Cache = c
	}

	if cfg.Bus.Enabled() {
		b, err := bus.Connect(cfg.Bus.Options(), logger)
		if err != nil {
			infra.closeCache()
			shutdown(context.Background())
			return nil, fmt.Errorf("bus init failed: %w", err)
		}
		infra.Bus = b
	}

	return infra, nil
}

// Start registers readiness checks and shutdown hooks with the lifecycle
// coordinator.
func (i *Infrastructure) Start() error {
	lc := i.Lifecycle
	logger := i.Logger.With("system", "infrastructure")

	if i.Bus != nil {
		lc.Check("bus", i.Bus.Ready)
		lc.OnShutdown(func() {
			<-lc.Context().Done()
			if err := i.Bus.Close(); err != nil {
				logger.Error("bus close failed", "error", err)
			}
		})
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		i.closeCache()
		if err := i.shutdownTelemetry(context.Background()); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	})

	return nil
}

func (i *Infrastructure) closeCache() {
	if i.Cache != nil {
		i.Cache.Close()
	}
}
