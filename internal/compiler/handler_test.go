package compiler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/quill/internal/compiler"
	"github.com/JaimeStill/quill/pkg/engine"
	"github.com/JaimeStill/quill/pkg/presets"
	"github.com/JaimeStill/quill/pkg/preview"
	"github.com/JaimeStill/quill/pkg/routes"
)

type mockSystem struct {
	ensureFn      func(ctx context.Context, req compiler.EnsureRequest) (*compiler.EnsureResult, error)
	parseFn       func(ctx context.Context, req compiler.ParseRequest) (*compiler.ParseResult, error)
	diffFn        func(ctx context.Context, req compiler.DiffRequest) (*compiler.DiffResult, error)
	classifyFn    func(ctx context.Context, req compiler.ClassifyRequest) (*compiler.ClassifyResult, error)
	generateFn    func(ctx context.Context, req compiler.GenerateRequest) (*compiler.GenerateResult, error)
	applyFn       func(ctx context.Context, req compiler.ApplyRequest) (*compiler.ApplyResult, error)
	applyUserFn   func(ctx context.Context, req compiler.ApplyUserRequest) (*compiler.ApplyResult, error)
	batchFn       func(ctx context.Context, req compiler.BatchRequest) (*compiler.BatchResult, error)
	previewFn     func(ctx context.Context, req compiler.PreviewRequest) (*preview.Preview, error)
	presetsFn     func(ctx context.Context) ([]compiler.PresetSummary, error)
	presetFn      func(ctx context.Context, key string) (*presets.Preset, error)
	buildPresetFn func(ctx context.Context, params presets.Params) (*compiler.PromptResult, error)
	chipsFn       func(ctx context.Context) ([]presets.Chip, error)
	shapeFn       func(ctx context.Context, req compiler.ShapeRequest) (*compiler.PromptResult, error)
}

func (m *mockSystem) Handler(maxBodySize int64) *compiler.Handler {
	return compiler.NewHandler(m, discard(), maxBodySize)
}

func (m *mockSystem) Ensure(ctx context.Context, req compiler.EnsureRequest) (*compiler.EnsureResult, error) {
	return m.ensureFn(ctx, req)
}

func (m *mockSystem) Parse(ctx context.Context, req compiler.ParseRequest) (*compiler.ParseResult, error) {
	return m.parseFn(ctx, req)
}

func (m *mockSystem) Diff(ctx context.Context, req compiler.DiffRequest) (*compiler.DiffResult, error) {
	return m.diffFn(ctx, req)
}

func (m *mockSystem) Classify(ctx context.Context, req compiler.ClassifyRequest) (*compiler.ClassifyResult, error) {
	return m.classifyFn(ctx, req)
}

func (m *mockSystem) Generate(ctx context.Context, req compiler.GenerateRequest) (*compiler.GenerateResult, error) {
	return m.generateFn(ctx, req)
}

func (m *mockSystem) Apply(ctx context.Context, req compiler.ApplyRequest) (*compiler.ApplyResult, error) {
	return m.applyFn(ctx, req)
}

func (m *mockSystem) ApplyUser(ctx context.Context, req compiler.ApplyUserRequest) (*compiler.ApplyResult, error) {
	return m.applyUserFn(ctx, req)
}

func (m *mockSystem) Batch(ctx context.Context, req compiler.BatchRequest) (*compiler.BatchResult, error) {
	return m.batchFn(ctx, req)
}

func (m *mockSystem) Preview(ctx context.Context, req compiler.PreviewRequest) (*preview.Preview, error) {
	return m.previewFn(ctx, req)
}

func (m *mockSystem) Presets(ctx context.Context) ([]compiler.PresetSummary, error) {
	return m.presetsFn(ctx)
}

func (m *mockSystem) Preset(ctx context.Context, key string) (*presets.Preset, error) {
	return m.presetFn(ctx, key)
}

func (m *mockSystem) BuildPreset(ctx context.Context, params presets.Params) (*compiler.PromptResult, error) {
	return m.buildPresetFn(ctx, params)
}

func (m *mockSystem) Chips(ctx context.Context) ([]presets.Chip, error) {
	return m.chipsFn(ctx)
}

func (m *mockSystem) Shape(ctx context.Context, req compiler.ShapeRequest) (*compiler.PromptResult, error) {
	return m.shapeFn(ctx, req)
}

func setupMux(h *compiler.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func post(mux http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestHandlerApply(t *testing.T) {
	var captured compiler.ApplyRequest
	sys := &mockSystem{
		applyFn: func(_ context.Context, req compiler.ApplyRequest) (*compiler.ApplyResult, error) {
			captured = req
			return &compiler.ApplyResult{
				Application: engine.Application{Merged: "merged", Summary: "+1/-0 lines"},
			}, nil
		},
	}
	mux := setupMux(sys.Handler(1 << 20))

	rec := post(mux, "/prompts/apply", `{"base_prompt":"base","instructions":"be polite"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if captured.BasePrompt != "base" || captured.Instructions != "be polite" {
		t.Errorf("request not decoded: %+v", captured)
	}

	var res compiler.ApplyResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Merged != "merged" || res.Summary != "+1/-0 lines" {
		t.Errorf("result: %+v", res)
	}
}

func TestHandlerDecodeErrors(t *testing.T) {
	sys := &mockSystem{
		applyFn: func(context.Context, compiler.ApplyRequest) (*compiler.ApplyResult, error) {
			t.Fatal("system should not be called")
			return nil, nil
		},
	}
	mux := setupMux(sys.Handler(64))

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"invalid json", `{"base_prompt":`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
		{"too large", fmt.Sprintf(`{"instructions":%q}`, strings.Repeat("x", 128)), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(mux, "/prompts/apply", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if errorBody(t, rec) == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty batch", compiler.ErrEmptyBatch, http.StatusBadRequest},
		{"batch too large", fmt.Errorf("%w: 60 items", compiler.ErrBatchTooLarge), http.StatusRequestEntityTooLarge},
		{"invalid field", fmt.Errorf("item 2: %w", compiler.ErrInvalidField), http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				batchFn: func(context.Context, compiler.BatchRequest) (*compiler.BatchResult, error) {
					return nil, tt.err
				},
			}
			rec := post(setupMux(sys.Handler(1<<20)), "/prompts/batch", `{"items":[]}`)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandlerPresets(t *testing.T) {
	sys := &mockSystem{
		presetsFn: func(context.Context) ([]compiler.PresetSummary, error) {
			return []compiler.PresetSummary{{Key: "generic"}, {Key: "legal", Regulated: true}}, nil
		},
		presetFn: func(_ context.Context, key string) (*presets.Preset, error) {
			if key != "legal" {
				return nil, fmt.Errorf("%w: %s", compiler.ErrPresetNotFound, key)
			}
			return &presets.Preset{Key: "legal", Label: "Law firm"}, nil
		},
		chipsFn: func(context.Context) ([]presets.Chip, error) {
			return presets.Chips(), nil
		},
	}
	mux := setupMux(sys.Handler(1 << 20))

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/presets", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var list []compiler.PresetSummary
		if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(list) != 2 || list[0].Key != "generic" {
			t.Errorf("list: %+v", list)
		}
	})

	t.Run("find", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/presets/legal", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var p presets.Preset
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.Label != "Law firm" {
			t.Errorf("label = %q", p.Label)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/presets/spaceport", nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if !strings.Contains(errorBody(t, rec), "spaceport") {
			t.Error("error should name the key")
		}
	})

	t.Run("chips", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/chips", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var chips []presets.Chip
		if err := json.NewDecoder(rec.Body).Decode(&chips); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(chips) != len(presets.Chips()) {
			t.Errorf("chips = %d", len(chips))
		}
	})
}

func TestHandlerWithService(t *testing.T) {
	sys := newSystem(t, nil, compiler.Config{BatchLimit: 2, Concurrency: 2})
	mux := setupMux(sys.Handler(1 << 20))

	body, _ := json.Marshal(compiler.ApplyRequest{
		BasePrompt:   engine.DefaultPrompt,
		Instructions: "make the tone friendlier",
	})

	t.Run("apply", func(t *testing.T) {
		rec := post(mux, "/prompts/apply", string(body))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body)
		}
		var res compiler.ApplyResult
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.Summary != "+1/-0 lines; [Style] +1" {
			t.Errorf("summary = %q", res.Summary)
		}
	})

	t.Run("batch over limit", func(t *testing.T) {
		var buf bytes.Buffer
		buf.WriteString(`{"items":[`)
		for i := range 3 {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(body)
		}
		buf.WriteString(`]}`)

		rec := post(mux, "/prompts/batch", buf.String())
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", rec.Code)
		}
	})

	t.Run("classify multi-line", func(t *testing.T) {
		rec := post(mux, "/prompts/classify", `{"line":"a\nb"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("build preset", func(t *testing.T) {
		rec := post(mux, "/presets/build", `{"industry":"restaurant","brand":"Luigi's"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body)
		}
		var res compiler.PromptResult
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.Contains(res.Prompt, "Luigi's") {
			t.Errorf("prompt missing brand:\n%s", res.Prompt)
		}
	})

	t.Run("shape", func(t *testing.T) {
		rec := post(mux, "/scheduling/shape", `{"raw":"Open weekdays.","org":"Bright Dental"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body)
		}
	})
}
