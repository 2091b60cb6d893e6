package main

import (
	"net/http"

	"github.com/JaimeStill/quill/internal/api"
	"github.com/JaimeStill/quill/internal/config"
	"github.com/JaimeStill/quill/internal/infrastructure"
	"github.com/JaimeStill/quill/pkg/handlers"
	"github.com/JaimeStill/quill/pkg/lifecycle"
	"github.com/JaimeStill/quill/pkg/middleware"
	"github.com/JaimeStill/quill/pkg/module"
	"github.com/JaimeStill/quill/web/scalar"
)

type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

type readiness struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks,omitempty"`
}

func buildRouter(lc *lifecycle.Coordinator) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, readiness{Status: "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		checks := lc.Status()
		if !lc.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, readiness{Status: "not ready", Checks: checks})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, readiness{Status: "ready", Checks: checks})
	})

	return router
}
