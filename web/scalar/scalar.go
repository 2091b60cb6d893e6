// Package scalar serves the Scalar API reference UI for the OpenAPI
// document published by the API module.
package scalar

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/quill/pkg/module"
)

//go:embed index.html scalar.css scalar.js
var staticFS embed.FS

// NewModule creates a module that serves the Scalar UI at basePath, reading
// the OpenAPI document from specURL.
func NewModule(basePath, specURL string) *module.Module {
	router := buildRouter(basePath, specURL)
	return module.New(basePath, router)
}

func buildRouter(basePath, specURL string) http.Handler {
	mux := http.NewServeMux()

	tmpl := template.Must(template.ParseFS(staticFS, "index.html"))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		tmpl.Execute(w, map[string]string{
			"BasePath": basePath,
			"SpecURL":  specURL,
		})
	})

	mux.Handle("GET /", http.FileServer(http.FS(staticFS)))

	return mux
}
