package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/quill/internal/config"
	"github.com/JaimeStill/quill/pkg/openapi"
	"github.com/JaimeStill/quill/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Compiler.Handler(runtime.MaxBodySize).Routes(),
	}
	routes.Register(mux, groups...)

	spec, err := openapi.MarshalJSON(NewSpec(cfg, groups...))
	if err != nil {
		return fmt.Errorf("openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

// NewSpec builds the OpenAPI document for groups mounted under the
// configured API base path.
func NewSpec(cfg *config.Config, groups ...routes.Group) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	if cfg.API.OpenAPI.ServerURL != "" {
		spec.AddServer(cfg.API.OpenAPI.ServerURL)
	}
	routes.Document(spec, cfg.API.BasePath, groups...)
	return spec
}
