package compiler

import (
	"github.com/JaimeStill/quill/pkg/openapi"
)

var sectionEnum = []any{"identity", "style", "response_guidelines", "task_goals", "error_handling"}

var schemas = map[string]*openapi.Schema{
	"PromptRequest": {
		Type:     "object",
		Required: []string{"prompt"},
		Properties: map[string]*openapi.Schema{
			"prompt": {Type: "string", Description: "System prompt text"},
		},
	},
	"EnsureResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"prompt":     {Type: "string", Description: "Prompt with all five section headers"},
			"structured": {Type: "boolean", Description: "Whether the input already had every header"},
		},
	},
	"ParseResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"structured": {Type: "boolean"},
			"sections":   openapi.ArrayOf("ParsedSection"),
		},
	},
	"ParsedSection": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"section": {Type: "string", Enum: sectionEnum},
			"header":  {Type: "string", Example: "[Task & Goals]"},
			"lines":   openapi.StringArray("Section body lines"),
		},
	},
	"DiffRequest": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"base": {Type: "string"},
			"next": {Type: "string"},
		},
	},
	"DiffRow": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"kind": {Type: "string", Enum: []any{"same", "add", "remove"}},
			"text": {Type: "string"},
		},
	},
	"DiffResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"diff":    openapi.ArrayOf("DiffRow"),
			"added":   {Type: "integer"},
			"removed": {Type: "integer"},
		},
	},
	"GenerateRequest": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"base_prompt": {Type: "string", Description: "Prompt to extend; blank uses the section skeleton"},
			"free_text":   {Type: "string", Description: "Instruction lines, plain text or HTML"},
		},
	},
	"Generation": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":          {Type: "string", Format: "uuid"},
			"next_prompt": {Type: "string"},
			"diff":        openapi.ArrayOf("DiffRow"),
			"added":       {Type: "integer"},
			"removed":     {Type: "integer"},
			"buckets_added": {
				Type:                 "object",
				Description:          "Lines added per section",
				AdditionalProperties: &openapi.Schema{Type: "integer"},
			},
			"cached": {Type: "boolean"},
		},
	},
	"ApplyRequest": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"base_prompt":  {Type: "string"},
			"instructions": {Type: "string", Description: "Instruction lines, plain text or HTML"},
		},
	},
	"ApplyUserRequest": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"base_prompt": {Type: "string"},
			"freeform":    {Type: "string", Description: "Instructions separated by newlines or semicolons"},
		},
	},
	"Application": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":      {Type: "string", Format: "uuid"},
			"merged":  {Type: "string"},
			"summary": {Type: "string", Example: "+1/-0 lines; [Style] +1"},
			"applied": {Type: "integer", Description: "Instruction lines merged"},
			"diff":    openapi.ArrayOf("DiffRow"),
			"cached":  {Type: "boolean"},
		},
	},
	"BatchRequest": {
		Type:     "object",
		Required: []string{"items"},
		Properties: map[string]*openapi.Schema{
			"items": openapi.ArrayOf("ApplyRequest"),
		},
	},
	"BatchResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"items": openapi.ArrayOf("Application"),
		},
	},
	"ClassifyRequest": {
		Type:     "object",
		Required: []string{"line"},
		Properties: map[string]*openapi.Schema{
			"line": {Type: "string", Example: "make the tone friendlier"},
		},
	},
	"ClassifyResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"kept":       {Type: "boolean", Description: "False when the line is blank"},
			"section":    {Type: "string", Enum: sectionEnum},
			"text":       {Type: "string", Description: "Policy-formatted line"},
			"normalized": {Type: "boolean"},
			"rewritten":  {Type: "boolean"},
		},
	},
	"Preview": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"markdown": {Type: "string"},
			"html":     {Type: "string"},
		},
	},
	"PresetSummary": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"key":       {Type: "string", Example: "restaurant"},
			"label":     {Type: "string"},
			"regulated": {Type: "boolean"},
			"aliases":   openapi.StringArray("Alternate industry names"),
		},
	},
	"Preset": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"key":                 {Type: "string"},
			"label":               {Type: "string"},
			"regulated":           {Type: "boolean"},
			"must_ask":            openapi.StringArray("Fields to collect before booking"),
			"safety":              openapi.StringArray("Safety lines for regulated industries"),
			"default_disclaimers": openapi.StringArray(""),
			"default_policies":    openapi.StringArray(""),
			"template":            {Type: "object", Description: "Template lines keyed by section"},
		},
	},
	"PresetParams": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"industry":    {Type: "string", Example: "restaurant"},
			"brand":       {Type: "string", Example: "Luigi's"},
			"in_location": {Type: "string", Example: "Brooklyn"},
			"tone":        {Type: "string", Example: "warm"},
			"services":    openapi.StringArray("Offered services"),
			"booking": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"type":  {Type: "string", Enum: []any{"", "url", "link", "online", "phone", "none"}},
					"url":   {Type: "string"},
					"phone": {Type: "string"},
				},
			},
			"base_prompt": {Type: "string", Description: "Prior prompt appended as a seed"},
		},
	},
	"Chip": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"label":       {Type: "string"},
			"section":     {Type: "string", Enum: sectionEnum},
			"instruction": {Type: "string"},
		},
	},
	"ShapeRequest": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"raw":          {Type: "string", Description: "Business context to append"},
			"name":         {Type: "string"},
			"org":          {Type: "string"},
			"persona_name": {Type: "string"},
		},
	},
	"PromptResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":     {Type: "string", Format: "uuid"},
			"prompt": {Type: "string"},
			"cached": {Type: "boolean"},
		},
	},
}

func post(summary, request, response string) *openapi.Operation {
	responses := map[int]*openapi.Response{
		200: openapi.ResponseJSON("OK", response),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("PayloadTooLarge"),
	}
	return &openapi.Operation{
		Summary:     summary,
		RequestBody: openapi.RequestBodyJSON(request, true),
		Responses:   responses,
	}
}

var (
	specEnsure    = post("Add any missing section headers", "PromptRequest", "EnsureResult")
	specParse     = post("Split a prompt into its sections", "PromptRequest", "ParseResult")
	specDiff      = post("Line diff of two prompts", "DiffRequest", "DiffResult")
	specGenerate  = post("Merge free text into a prompt", "GenerateRequest", "Generation")
	specApply     = post("Apply instructions to a prompt", "ApplyRequest", "Application")
	specApplyUser = post("Apply freeform user instructions", "ApplyUserRequest", "Application")
	specBatch     = post("Apply instructions to many prompts", "BatchRequest", "BatchResult")
	specClassify  = post("Route one instruction line to a section", "ClassifyRequest", "ClassifyResult")
	specPreview   = post("Render a prompt as markdown and HTML", "PromptRequest", "Preview")

	specBuildPreset = post("Compile a prompt from an industry preset", "PresetParams", "PromptResult")
	specShape       = post("Stamp a scheduling voice-agent prompt", "ShapeRequest", "PromptResult")

	specListPresets = &openapi.Operation{
		Summary: "List presets",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseSchema("OK", openapi.ArrayOf("PresetSummary")),
		},
	}

	specFindPreset = &openapi.Operation{
		Summary:    "Get a preset by key or alias",
		Parameters: []*openapi.Parameter{openapi.PathParam("key", "Preset key or alias")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("OK", "Preset"),
			404: openapi.ResponseRef("NotFound"),
		},
	}

	specListChips = &openapi.Operation{
		Summary: "List instruction chips",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseSchema("OK", openapi.ArrayOf("Chip")),
		},
	}
)
