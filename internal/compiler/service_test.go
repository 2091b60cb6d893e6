package compiler_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/quill/internal/compiler"
	"github.com/JaimeStill/quill/pkg/cache"
	"github.com/JaimeStill/quill/pkg/engine"
	"github.com/JaimeStill/quill/pkg/presets"
	"github.com/JaimeStill/quill/pkg/scheduling"
	"github.com/JaimeStill/quill/pkg/sections"
	"github.com/JaimeStill/quill/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSystem(t *testing.T, c *cache.Cache, cfg compiler.Config) compiler.System {
	t.Helper()
	sys, err := compiler.New(nil, c, nil, discard(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sys
}

func newCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.New(1<<20, time.Minute)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestApply(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})

	res, err := sys.Apply(context.Background(), compiler.ApplyRequest{
		BasePrompt:   engine.DefaultPrompt,
		Instructions: "make the tone friendlier",
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if !strings.Contains(res.Merged, "- Use a tone that is friendly.") {
		t.Errorf("merged missing rewritten line:\n%s", res.Merged)
	}
	if res.Summary != "+1/-0 lines; [Style] +1" {
		t.Errorf("summary: got %q", res.Summary)
	}
	if res.ID.String() == "" || res.Cached {
		t.Errorf("id/cached: got %v/%v", res.ID, res.Cached)
	}
}

func TestApplyRichText(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})

	res, err := sys.Apply(context.Background(), compiler.ApplyRequest{
		BasePrompt:   engine.DefaultPrompt,
		Instructions: "<ul><li>make the tone friendlier</li></ul>",
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if strings.Contains(res.Merged, "<li>") {
		t.Errorf("markup should be stripped:\n%s", res.Merged)
	}
	if !strings.Contains(res.Merged, "- Use a tone that is friendly.") {
		t.Errorf("merged missing rewritten line:\n%s", res.Merged)
	}
}

func TestApplyCached(t *testing.T) {
	c := newCache(t)
	sys := newSystem(t, c, compiler.Config{})
	req := compiler.ApplyRequest{BasePrompt: engine.DefaultPrompt, Instructions: "keep answers short"}

	first, err := sys.Apply(context.Background(), req)
	if err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	c.Wait()

	second, err := sys.Apply(context.Background(), req)
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}

	if first.Cached {
		t.Error("first call should not be cached")
	}
	if !second.Cached {
		t.Error("second call should be served from cache")
	}
	if first.Merged != second.Merged || first.Summary != second.Summary {
		t.Error("cached result should match computed result")
	}
	if first.ID == second.ID {
		t.Error("each compile should get its own id")
	}
}

func TestApplyCancelled(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sys.Apply(ctx, compiler.ApplyRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want context.Canceled", err)
	}
}

// linesAdded sums the quill.lines.added data points recorded for op.
func linesAdded(t *testing.T, reader *sdkmetric.ManualReader, op string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "quill.lines.added" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected aggregation %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("op")); ok && v.AsString() == op {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestLinesAddedMetric(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewMetricsFrom(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	if err != nil {
		t.Fatalf("NewMetricsFrom() error = %v", err)
	}
	sys, err := compiler.New(nil, nil, metrics, discard(), compiler.Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	user, err := sys.ApplyUser(ctx, compiler.ApplyUserRequest{
		BasePrompt: engine.DefaultPrompt,
		Freeform:   "avoid jargon; collect the order number",
	})
	if err != nil {
		t.Fatalf("ApplyUser() error = %v", err)
	}
	if user.Applied != 2 {
		t.Errorf("applied: got %d, want 2", user.Applied)
	}
	if got := linesAdded(t, reader, "apply_user"); got != 2 {
		t.Errorf("apply_user lines added: got %d, want 2", got)
	}

	if _, err := sys.Apply(ctx, compiler.ApplyRequest{
		BasePrompt:   "an unstructured note",
		Instructions: "be polite",
	}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := linesAdded(t, reader, "apply"); got != 1 {
		t.Errorf("apply lines added: got %d, want 1", got)
	}
}

func TestApplyUser(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})

	res, err := sys.ApplyUser(context.Background(), compiler.ApplyUserRequest{
		Freeform: "keep answers short; ask for the caller's phone number",
	})
	if err != nil {
		t.Fatalf("ApplyUser() error = %v", err)
	}

	if !sections.IsStructured(res.Merged) {
		t.Errorf("merged should be structured:\n%s", res.Merged)
	}
	if !strings.HasPrefix(res.Summary, "Applied 2 instructions") {
		t.Errorf("summary: got %q", res.Summary)
	}
	if res.Diff != nil {
		t.Error("apply-user should not report a diff")
	}
}

func TestGenerate(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})

	res, err := sys.Generate(context.Background(), compiler.GenerateRequest{
		BasePrompt: engine.DefaultPrompt,
		FreeText:   "if the system is down, apologize and offer a callback",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if res.Added != 1 {
		t.Errorf("added: got %d, want 1", res.Added)
	}
	if res.BucketsAdded[sections.ErrorHandling] != 1 {
		t.Errorf("buckets: got %v", res.BucketsAdded)
	}
}

func TestGenerateCachedBuckets(t *testing.T) {
	c := newCache(t)
	sys := newSystem(t, c, compiler.Config{})
	req := compiler.GenerateRequest{BasePrompt: engine.DefaultPrompt, FreeText: "keep answers short"}

	if _, err := sys.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	c.Wait()

	res, err := sys.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !res.Cached {
		t.Fatal("second call should be cached")
	}
	if res.BucketsAdded[sections.ResponseGuidelines] != 1 {
		t.Errorf("cached buckets: got %v", res.BucketsAdded)
	}
}

func TestBatch(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{BatchLimit: 10, Concurrency: 3})

	items := make([]compiler.ApplyRequest, 6)
	for i := range items {
		items[i] = compiler.ApplyRequest{
			BasePrompt:   engine.DefaultPrompt,
			Instructions: fmt.Sprintf("Mention promo code SAVE%d in answers", i),
		}
	}

	res, err := sys.Batch(context.Background(), compiler.BatchRequest{Items: items})
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	if len(res.Items) != len(items) {
		t.Fatalf("items: got %d, want %d", len(res.Items), len(items))
	}
	for i, item := range res.Items {
		if !strings.Contains(item.Merged, fmt.Sprintf("SAVE%d", i)) {
			t.Errorf("item %d out of order:\n%s", i, item.Merged)
		}
	}
}

func TestBatchLimits(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{BatchLimit: 2, Concurrency: 1})

	tests := []struct {
		name    string
		items   int
		wantErr error
	}{
		{"empty", 0, compiler.ErrEmptyBatch},
		{"too large", 3, compiler.ErrBatchTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.Batch(context.Background(), compiler.BatchRequest{
				Items: make([]compiler.ApplyRequest, tt.items),
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureAndParse(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})
	ctx := context.Background()

	ensured, err := sys.Ensure(ctx, compiler.EnsureRequest{Prompt: "Be helpful."})
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if ensured.Structured {
		t.Error("plain text should not be reported as structured")
	}
	if !sections.IsStructured(ensured.Prompt) {
		t.Errorf("ensured prompt should be structured:\n%s", ensured.Prompt)
	}

	parsed, err := sys.Parse(ctx, compiler.ParseRequest{Prompt: engine.DefaultPrompt})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !parsed.Structured {
		t.Error("default prompt should be structured")
	}
	if len(parsed.Sections) != 5 {
		t.Fatalf("sections: got %d, want 5", len(parsed.Sections))
	}
	for i, sec := range sections.Sections() {
		if parsed.Sections[i].Section != sec {
			t.Errorf("section %d: got %s, want %s", i, parsed.Sections[i].Section, sec)
		}
		if parsed.Sections[i].Lines == nil {
			t.Errorf("section %s lines should not be nil", sec)
		}
	}
}

func TestDiff(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})

	res, err := sys.Diff(context.Background(), compiler.DiffRequest{Base: "a\nb", Next: "a\nc\nd"})
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if res.Added != 2 || res.Removed != 1 {
		t.Errorf("counts: got +%d/-%d, want +2/-1", res.Added, res.Removed)
	}

	empty, err := sys.Diff(context.Background(), compiler.DiffRequest{})
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if empty.Diff == nil || len(empty.Diff) != 0 {
		t.Errorf("empty diff should be a non-nil empty slice: %v", empty.Diff)
	}
}

func TestClassify(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})
	ctx := context.Background()

	tests := []struct {
		name        string
		line        string
		wantKept    bool
		wantSection sections.Section
		wantErr     error
	}{
		{"tone", "make the tone friendlier", true, sections.Style, nil},
		{"blank", "   ", false, "", nil},
		{"toxic", "you are a dumb bot", true, sections.ErrorHandling, nil},
		{"multi-line", "a\nb", false, "", compiler.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := sys.Classify(ctx, compiler.ClassifyRequest{Line: tt.line})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if res.Kept != tt.wantKept {
				t.Errorf("kept: got %v, want %v", res.Kept, tt.wantKept)
			}
			if tt.wantKept && res.Section != tt.wantSection {
				t.Errorf("section: got %s, want %s", res.Section, tt.wantSection)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	sys := newSystem(t, newCache(t), compiler.Config{})

	p, err := sys.Preview(context.Background(), compiler.PreviewRequest{Prompt: engine.DefaultPrompt})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if !strings.Contains(p.Markdown, "## Identity") {
		t.Errorf("markdown:\n%s", p.Markdown)
	}
	if !strings.Contains(p.HTML, "<h2>Identity</h2>") {
		t.Errorf("html:\n%s", p.HTML)
	}
}

func TestPresets(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})
	ctx := context.Background()

	list, err := sys.Presets(ctx)
	if err != nil {
		t.Fatalf("Presets() error = %v", err)
	}
	if len(list) != len(presets.Keys())+1 {
		t.Errorf("presets: got %d, want %d", len(list), len(presets.Keys())+1)
	}
	if list[0].Key != presets.GenericKey {
		t.Errorf("first preset: got %s, want generic", list[0].Key)
	}

	p, err := sys.Preset(ctx, "restaurant")
	if err != nil {
		t.Fatalf("Preset() error = %v", err)
	}
	if p.Key != "restaurant" {
		t.Errorf("key: got %s", p.Key)
	}

	if _, err := sys.Preset(ctx, "spaceport"); !errors.Is(err, compiler.ErrPresetNotFound) {
		t.Errorf("unknown preset: got %v, want ErrPresetNotFound", err)
	}
}

func TestBuildPreset(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})
	ctx := context.Background()

	res, err := sys.BuildPreset(ctx, presets.Params{
		Industry: "restaurant",
		Brand:    "Luigi's",
		Booking:  &presets.Booking{Type: "url", URL: "https://luigis.example/book"},
	})
	if err != nil {
		t.Fatalf("BuildPreset() error = %v", err)
	}
	if !strings.Contains(res.Prompt, "https://luigis.example/book") {
		t.Errorf("prompt missing booking url:\n%s", res.Prompt)
	}

	res, err = sys.BuildPreset(ctx, presets.Params{
		Industry: "restaurant",
		Booking:  &presets.Booking{Type: "opentable", URL: "https://opentable.com/x"},
	})
	if err != nil {
		t.Fatalf("BuildPreset(opentable) error = %v", err)
	}
	if !strings.Contains(res.Prompt, "via https://opentable.com/x") {
		t.Errorf("prompt missing provider url:\n%s", res.Prompt)
	}

	tests := []struct {
		name   string
		params presets.Params
	}{
		{"bad booking type", presets.Params{Booking: &presets.Booking{Type: "carrier pigeon"}}},
		{"too many services", presets.Params{Services: make([]string, 51)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sys.BuildPreset(ctx, tt.params); !errors.Is(err, compiler.ErrInvalidField) {
				t.Errorf("error: got %v, want ErrInvalidField", err)
			}
		})
	}
}

func TestChips(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})

	chips, err := sys.Chips(context.Background())
	if err != nil {
		t.Fatalf("Chips() error = %v", err)
	}
	if len(chips) != len(presets.Chips()) {
		t.Errorf("chips: got %d", len(chips))
	}
}

func TestShape(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{})

	res, err := sys.Shape(context.Background(), compiler.ShapeRequest{
		Raw:     "We are open 9 to 5.",
		Options: scheduling.Options{Org: "Bright Dental"},
	})
	if err != nil {
		t.Fatalf("Shape() error = %v", err)
	}
	if !strings.Contains(res.Prompt, "Bright Dental") {
		t.Errorf("prompt missing org:\n%s", res.Prompt)
	}
	if !strings.Contains(res.Prompt, scheduling.ContextHeader) {
		t.Errorf("prompt missing business context:\n%s", res.Prompt)
	}
}
