package compiler

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/quill/pkg/classifier"
	"github.com/JaimeStill/quill/pkg/engine"
	"github.com/JaimeStill/quill/pkg/presets"
	"github.com/JaimeStill/quill/pkg/scheduling"
	"github.com/JaimeStill/quill/pkg/sections"
)

// EnsureRequest carries a prompt to wrap in the five-section skeleton.
type EnsureRequest struct {
	Prompt string `json:"prompt"`
}

// EnsureResult reports the structured prompt and whether the input
// already had every section header.
type EnsureResult struct {
	Prompt     string `json:"prompt"`
	Structured bool   `json:"structured"`
}

// ParseRequest carries a prompt to split into sections.
type ParseRequest struct {
	Prompt string `json:"prompt"`
}

// ParsedSection is one section of a parsed prompt, in canonical order.
type ParsedSection struct {
	Section sections.Section `json:"section"`
	Header  string           `json:"header"`
	Lines   []string         `json:"lines"`
}

// ParseResult lists all five sections, including empty ones.
type ParseResult struct {
	Structured bool            `json:"structured"`
	Sections   []ParsedSection `json:"sections"`
}

// DiffRequest carries two prompts to compare line by line.
type DiffRequest struct {
	Base string `json:"base"`
	Next string `json:"next"`
}

// DiffResult is the row diff with its add and remove counts.
type DiffResult struct {
	Diff    []engine.DiffRow `json:"diff"`
	Added   int              `json:"added"`
	Removed int              `json:"removed"`
}

// GenerateRequest merges free text into a base prompt.
type GenerateRequest struct {
	BasePrompt string `json:"base_prompt"`
	FreeText   string `json:"free_text"`
}

// GenerateResult is a Generation tagged with its compile id.
type GenerateResult struct {
	ID uuid.UUID `json:"id"`
	engine.Generation
	Cached bool `json:"cached"`
}

// ApplyRequest merges an instruction list into a base prompt.
type ApplyRequest struct {
	BasePrompt   string `json:"base_prompt"`
	Instructions string `json:"instructions"`
}

// ApplyUserRequest merges freeform user text, split on newlines and
// semicolons, into a base prompt.
type ApplyUserRequest struct {
	BasePrompt string `json:"base_prompt"`
	Freeform   string `json:"freeform"`
}

// ApplyResult is an Application tagged with its compile id.
type ApplyResult struct {
	ID uuid.UUID `json:"id"`
	engine.Application
	Cached bool `json:"cached"`
}

// BatchRequest applies each item independently.
type BatchRequest struct {
	Items []ApplyRequest `json:"items"`
}

// BatchResult holds one result per request item, in request order.
type BatchResult struct {
	Items []ApplyResult `json:"items"`
}

// ClassifyRequest carries one instruction line.
type ClassifyRequest struct {
	Line string `json:"line"`
}

// ClassifyResult is the routing outcome. Kept is false when the line would
// be dropped as blank.
type ClassifyResult struct {
	Kept bool `json:"kept"`
	classifier.Result
}

// PreviewRequest carries a prompt to render.
type PreviewRequest struct {
	Prompt string `json:"prompt"`
}

// PresetSummary lists a preset without its template.
type PresetSummary struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Regulated bool     `json:"regulated"`
	Aliases   []string `json:"aliases,omitempty"`
}

// ShapeRequest stamps raw text into the scheduling voice-agent template.
type ShapeRequest struct {
	Raw string `json:"raw"`
	scheduling.Options
}

// PromptResult wraps a compiled prompt.
type PromptResult struct {
	ID     uuid.UUID `json:"id"`
	Prompt string    `json:"prompt"`
	Cached bool      `json:"cached"`
}

func summarize(p presets.Preset) PresetSummary {
	return PresetSummary{
		Key:       p.Key,
		Label:     p.Label,
		Regulated: p.Regulated,
		Aliases:   presets.Aliases(p.Key),
	}
}
