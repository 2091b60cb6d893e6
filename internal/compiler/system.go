// Package compiler exposes the prompt engine as a service domain: cached,
// traced compile operations with HTTP and NATS front ends.
package compiler

import (
	"context"

	"github.com/JaimeStill/quill/pkg/presets"
	"github.com/JaimeStill/quill/pkg/preview"
)

// System defines the public contract for compile operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	Ensure(ctx context.Context, req EnsureRequest) (*EnsureResult, error)
	Parse(ctx context.Context, req ParseRequest) (*ParseResult, error)
	Diff(ctx context.Context, req DiffRequest) (*DiffResult, error)
	Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResult, error)

	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error)
	ApplyUser(ctx context.Context, req ApplyUserRequest) (*ApplyResult, error)
	Batch(ctx context.Context, req BatchRequest) (*BatchResult, error)
	Preview(ctx context.Context, req PreviewRequest) (*preview.Preview, error)

	Presets(ctx context.Context) ([]PresetSummary, error)
	Preset(ctx context.Context, key string) (*presets.Preset, error)
	BuildPreset(ctx context.Context, params presets.Params) (*PromptResult, error)
	Chips(ctx context.Context) ([]presets.Chip, error)

	Shape(ctx context.Context, req ShapeRequest) (*PromptResult, error)
}
