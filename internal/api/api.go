// Package api assembles the API module with the compiler domain, OpenAPI
// document, and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/quill/internal/compiler"
	"github.com/JaimeStill/quill/internal/config"
	"github.com/JaimeStill/quill/internal/infrastructure"
	"github.com/JaimeStill/quill/pkg/middleware"
	"github.com/JaimeStill/quill/pkg/module"
	"github.com/JaimeStill/quill/pkg/telemetry"
)

// NewModule creates the API module with all domain handlers and middleware.
// When a bus is configured the compiler responders are registered on it.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	if runtime.Bus != nil {
		if err := compiler.Serve(runtime.Bus, domain.Compiler, cfg.Bus.Subject); err != nil {
			return nil, fmt.Errorf("bus responders: %w", err)
		}
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(telemetry.HTTPMiddleware(cfg.Telemetry.ServiceName))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))

	return m, nil
}
