package compiler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/quill/pkg/handlers"
	"github.com/JaimeStill/quill/pkg/routes"
)

// Handler provides HTTP endpoints for compile operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler. Request bodies larger than maxBodySize are
// rejected with 413.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "compiler"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route groups for prompt, preset, chip, and scheduling
// endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Schemas: schemas,
		Children: []routes.Group{
			{
				Prefix:      "/prompts",
				Tags:        []string{"Prompts"},
				Description: "Structure, merge, diff, and preview system prompts",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/ensure", Handler: compile(h, h.sys.Ensure), OpenAPI: specEnsure},
					{Method: "POST", Pattern: "/parse", Handler: compile(h, h.sys.Parse), OpenAPI: specParse},
					{Method: "POST", Pattern: "/diff", Handler: compile(h, h.sys.Diff), OpenAPI: specDiff},
					{Method: "POST", Pattern: "/generate", Handler: compile(h, h.sys.Generate), OpenAPI: specGenerate},
					{Method: "POST", Pattern: "/apply", Handler: compile(h, h.sys.Apply), OpenAPI: specApply},
					{Method: "POST", Pattern: "/apply-user", Handler: compile(h, h.sys.ApplyUser), OpenAPI: specApplyUser},
					{Method: "POST", Pattern: "/batch", Handler: compile(h, h.sys.Batch), OpenAPI: specBatch},
					{Method: "POST", Pattern: "/classify", Handler: compile(h, h.sys.Classify), OpenAPI: specClassify},
					{Method: "POST", Pattern: "/preview", Handler: compile(h, h.sys.Preview), OpenAPI: specPreview},
				},
			},
			{
				Prefix:      "/presets",
				Tags:        []string{"Presets"},
				Description: "Industry preset library",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListPresets, OpenAPI: specListPresets},
					{Method: "GET", Pattern: "/{key}", Handler: h.FindPreset, OpenAPI: specFindPreset},
					{Method: "POST", Pattern: "/build", Handler: compile(h, h.sys.BuildPreset), OpenAPI: specBuildPreset},
				},
			},
			{
				Prefix:      "/chips",
				Tags:        []string{"Presets"},
				Description: "Industry preset library",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListChips, OpenAPI: specListChips},
				},
			},
			{
				Prefix:      "/scheduling",
				Tags:        []string{"Scheduling"},
				Description: "Voice scheduling agent template",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/shape", Handler: compile(h, h.sys.Shape), OpenAPI: specShape},
				},
			},
		},
	}
}

// ListPresets returns every preset summary, generic first.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	list, err := h.sys.Presets(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// FindPreset returns the preset for a key or alias.
func (h *Handler) FindPreset(w http.ResponseWriter, r *http.Request) {
	p, err := h.sys.Preset(r.Context(), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, p)
}

// ListChips returns the instruction chip library.
func (h *Handler) ListChips(w http.ResponseWriter, r *http.Request) {
	chips, err := h.sys.Chips(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, chips)
}

// compile adapts a System operation to a JSON POST endpoint.
func compile[Req, Res any](h *Handler, op func(context.Context, Req) (Res, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := handlers.DecodeJSON(w, r, h.maxBodySize, &req); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}

		res, err := op(r.Context(), req)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}

		handlers.RespondJSON(w, http.StatusOK, res)
	}
}
